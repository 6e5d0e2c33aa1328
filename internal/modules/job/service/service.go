package job

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"anoa.com/jobportal/internal/entity"
	companyRepo "anoa.com/jobportal/internal/modules/company/repository"
	"anoa.com/jobportal/internal/modules/job/dto"
	"anoa.com/jobportal/internal/modules/job/repository"
	searchDto "anoa.com/jobportal/internal/modules/search/dto"
	search "anoa.com/jobportal/internal/modules/search/service"
	view "anoa.com/jobportal/internal/modules/view/service"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/events"
	"anoa.com/jobportal/pkg/ratelimiter"
	"anoa.com/jobportal/pkg/validator"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const postJobAction = "post_job"

type JobService interface {
	PostJob(ctx context.Context, input dto.PostJobInput, postedBy uuid.UUID) (*entity.Job, error)
	ListJobs(ctx context.Context, keyword string) ([]entity.Job, error)
	GetJob(ctx context.Context, jobID string, viewer string) (*entity.Job, error)
	ListOwnJobs(ctx context.Context, postedBy uuid.UUID) ([]entity.Job, error)
	SearchJobs(ctx context.Context, q searchDto.SearchQuery) (*searchDto.SearchResult, error)
	ReindexAll(ctx context.Context) error
}

type Options struct {
	RedisClient  *redis.Client
	PostCooldown time.Duration
	Search       search.JobSearchService
	Views        view.ViewService
	Events       events.Publisher
}

type jobService struct {
	repo         repository.JobRepository
	companies    companyRepo.CompanyRepository
	redisClient  *redis.Client
	postCooldown time.Duration
	search       search.JobSearchService
	views        view.ViewService
	events       events.Publisher
}

func NewJobService(repo repository.JobRepository, companies companyRepo.CompanyRepository, opts Options) JobService {
	publisher := opts.Events
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &jobService{
		repo:         repo,
		companies:    companies,
		redisClient:  opts.RedisClient,
		postCooldown: opts.PostCooldown,
		search:       opts.Search,
		views:        opts.Views,
		events:       publisher,
	}
}

func (s *jobService) PostJob(ctx context.Context, input dto.PostJobInput, postedBy uuid.UUID) (*entity.Job, error) {
	input = trimPostJob(input)
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	salary, err := strconv.ParseFloat(input.Salary.String(), 64)
	if err != nil || salary < 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return nil, apperror.New(http.StatusBadRequest, "salary must be a non-negative number", apperror.ErrInvalidInput)
	}
	position, err := strconv.Atoi(input.Position.String())
	if err != nil || position <= 0 {
		return nil, apperror.New(http.StatusBadRequest, "position must be a positive whole number", apperror.ErrInvalidInput)
	}
	if !entity.IsExperienceLevel(input.Experience) {
		return nil, apperror.New(http.StatusBadRequest,
			"experience must be one of: "+strings.Join(entity.ExperienceLevels, ", "), apperror.ErrInvalidInput)
	}
	requirements := commonDto.SplitCSV(input.Requirements)
	if len(requirements) == 0 {
		return nil, apperror.ErrMissingField.WithMessage("please fill all the fields: requirements is required")
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, apperror.ErrCompanyNotFound
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCompanyNotFound
		}
		return nil, err
	}
	if company.UserID != postedBy {
		return nil, apperror.ErrNotOwner
	}

	if err := ratelimiter.Guard(ctx, s.redisClient, postedBy, postJobAction, s.postCooldown); err != nil {
		return nil, err
	}

	job := &entity.Job{
		Title:           input.Title,
		Description:     input.Description,
		Requirements:    requirements,
		Salary:          salary,
		Location:        input.Location,
		JobType:         input.JobType,
		ExperienceLevel: input.Experience,
		Position:        position,
		CompanyID:       company.ID,
		CreatedBy:       postedBy,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, postedBy, postJobAction)
		return nil, err
	}
	job.Company = company

	s.index(job)
	events.PublishAsync(s.events, events.New(events.JobPosted, job.ID.String(), dto.JobPostedEvent{
		JobID:     job.ID.String(),
		CompanyID: company.ID.String(),
		Title:     job.Title,
		PostedBy:  postedBy.String(),
	}))

	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, keyword string) ([]entity.Job, error) {
	jobs, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, apperror.ErrNoJobsFound
	}
	return jobs, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string, viewer string) (*entity.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, apperror.ErrMissingJobID
	}
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperror.ErrJobNotFound
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	if s.views != nil {
		if err := s.views.IncrementView(ctx, job.ID, viewer); err != nil {
			log.Printf("⚠️  failed to count view for job %s: %v", job.ID, err)
		}
	}

	return job, nil
}

func (s *jobService) ListOwnJobs(ctx context.Context, postedBy uuid.UUID) ([]entity.Job, error) {
	jobs, err := s.repo.FindByCreator(ctx, postedBy)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}
	return jobs, nil
}

func (s *jobService) SearchJobs(ctx context.Context, q searchDto.SearchQuery) (*searchDto.SearchResult, error) {
	if s.search == nil {
		return nil, apperror.ErrSearchUnavailable
	}
	res, err := s.search.SearchJobs(ctx, q)
	if err != nil {
		log.Printf("❌ job search failed: %v", err)
		return nil, apperror.ErrSearchUnavailable
	}
	return res, nil
}

// ReindexAll pushes every stored job to the search index.
func (s *jobService) ReindexAll(ctx context.Context) error {
	if s.search == nil {
		return nil
	}
	jobs, err := s.repo.Search(ctx, "")
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}
	if err := s.search.IndexJobs(jobs); err != nil {
		return err
	}
	log.Printf("🔎 Reindexed %d jobs", len(jobs))
	return nil
}

func (s *jobService) index(job *entity.Job) {
	if s.search == nil {
		return
	}
	snapshot := *job
	go func() {
		if err := s.search.IndexJob(&snapshot); err != nil {
			log.Printf("⚠️  failed to index job %s: %v", snapshot.ID, err)
		}
	}()
}

func trimPostJob(in dto.PostJobInput) dto.PostJobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.Salary = json.Number(strings.TrimSpace(in.Salary.String()))
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = strings.TrimSpace(in.JobType)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Position = json.Number(strings.TrimSpace(in.Position.String()))
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	return in
}
