package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/search/dto"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const jobsIndex = "jobs"

type JobSearchService interface {
	IndexJob(job *entity.Job) error
	IndexJobs(jobs []entity.Job) error
	SearchJobs(ctx context.Context, q dto.SearchQuery) (*dto.SearchResult, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) JobSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterable := []any{"companyId", "jobType", "experienceLevel", "location"}
	if _, err := s.client.Index(jobsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update jobs filterable attributes: %v", err)
	}

	sortable := []string{"createdAt", "salary"}
	if _, err := s.client.Index(jobsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update jobs sortable attributes: %v", err)
	}

	searchable := []string{"title", "description", "requirements", "companyName", "location"}
	if _, err := s.client.Index(jobsIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("Failed to update jobs searchable attributes: %v", err)
	}

	log.Println("Meilisearch jobs index initialized")
}

func (s *meiliSearchService) IndexJob(job *entity.Job) error {
	return s.IndexJobs([]entity.Job{*job})
}

func (s *meiliSearchService) IndexJobs(jobs []entity.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	docs := make([]dto.JobDocument, 0, len(jobs))
	for i := range jobs {
		docs = append(docs, toDocument(s.sanitizer, &jobs[i]))
	}

	task, err := s.client.Index(jobsIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed %d job(s), task id: %d", len(docs), task.TaskUID)
	return nil
}

func (s *meiliSearchService) SearchJobs(ctx context.Context, q dto.SearchQuery) (*dto.SearchResult, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	req := &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Offset: int64((page - 1) * limit),
	}
	if filter := buildFilter(q); filter != "" {
		req.Filter = filter
	}
	switch q.SortBy {
	case "salary":
		req.Sort = []string{"salary:desc"}
	case "newest":
		req.Sort = []string{"createdAt:desc"}
	}

	raw, err := s.client.Index(jobsIndex).SearchRawWithContext(ctx, strings.TrimSpace(q.Query), req)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}

	var body struct {
		Hits               []dto.JobDocument `json:"hits"`
		EstimatedTotalHits int64             `json:"estimatedTotalHits"`
		ProcessingTimeMs   int64             `json:"processingTimeMs"`
	}
	if err := json.Unmarshal(*raw, &body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if body.Hits == nil {
		body.Hits = []dto.JobDocument{}
	}

	return &dto.SearchResult{
		Hits:       body.Hits,
		TotalHits:  body.EstimatedTotalHits,
		Page:       page,
		Limit:      limit,
		Processing: body.ProcessingTimeMs,
	}, nil
}

func toDocument(sanitizer *bluemonday.Policy, job *entity.Job) dto.JobDocument {
	doc := dto.JobDocument{
		ID:              job.ID.String(),
		Title:           cleanText(sanitizer, job.Title),
		Description:     cleanText(sanitizer, job.Description),
		Requirements:    make([]string, 0, len(job.Requirements)),
		Location:        job.Location,
		JobType:         job.JobType,
		ExperienceLevel: job.ExperienceLevel,
		Salary:          job.Salary,
		Position:        job.Position,
		CompanyID:       job.CompanyID.String(),
		CreatedAt:       job.CreatedAt.Unix(),
	}
	for _, r := range job.Requirements {
		doc.Requirements = append(doc.Requirements, cleanText(sanitizer, r))
	}
	if job.Company != nil {
		doc.CompanyName = job.Company.Name
		doc.CompanyLogo = job.Company.Logo
	}
	return doc
}

// cleanText strips markup so indexed text matches what users type.
func cleanText(sanitizer *bluemonday.Policy, content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")
	content = strings.ReplaceAll(content, "</li>", " ")

	sanitized := sanitizer.Sanitize(content)
	return strings.Join(strings.Fields(html.UnescapeString(sanitized)), " ")
}

func buildFilter(q dto.SearchQuery) string {
	var parts []string
	if v := strings.TrimSpace(q.JobType); v != "" {
		parts = append(parts, "jobType = "+strconv.Quote(v))
	}
	if v := strings.TrimSpace(q.Experience); v != "" {
		parts = append(parts, "experienceLevel = "+strconv.Quote(v))
	}
	if v := strings.TrimSpace(q.CompanyID); v != "" {
		parts = append(parts, "companyId = "+strconv.Quote(v))
	}
	return strings.Join(parts, " AND ")
}

func strPtr(s string) *string {
	return &s
}
