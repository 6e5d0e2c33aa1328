package search

import (
	"testing"
	"time"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/search/dto"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	p := bluemonday.StrictPolicy()

	assert.Equal(t, "Build APIs in Go & Postgres", cleanText(p, "<p>Build APIs</p><p>in <b>Go</b> &amp; Postgres</p>"))
	assert.Equal(t, "plain", cleanText(p, "  plain  "))
	assert.Equal(t, "", cleanText(p, "<script>alert(1)</script>"))
}

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, "", buildFilter(dto.SearchQuery{Query: "go"}))
	assert.Equal(t,
		`jobType = "Full Time" AND experienceLevel = "1-3 Years"`,
		buildFilter(dto.SearchQuery{JobType: "Full Time", Experience: "1-3 Years"}),
	)
	assert.Equal(t, `jobType = "a\"b"`, buildFilter(dto.SearchQuery{JobType: `a"b`}))
}

func TestToDocument(t *testing.T) {
	companyID := uuid.New()
	job := &entity.Job{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		Description:     "<p>Go services</p>",
		Requirements:    []string{"Go", "<i>SQL</i>"},
		ExperienceLevel: "1-3 Years",
		Salary:          12,
		Position:        2,
		CompanyID:       companyID,
		Company:         &entity.Company{ID: companyID, Name: "Acme", Logo: "https://cdn/logo.webp"},
		CreatedAt:       time.Unix(1700000000, 0),
	}

	doc := toDocument(bluemonday.StrictPolicy(), job)

	assert.Equal(t, job.ID.String(), doc.ID)
	assert.Equal(t, "Go services", doc.Description)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Requirements)
	assert.Equal(t, "Acme", doc.CompanyName)
	assert.Equal(t, int64(1700000000), doc.CreatedAt)
}
