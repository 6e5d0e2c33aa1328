package repository

import (
	"context"
	"strings"

	"anoa.com/jobportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	// FindByID loads the job with its company and applications.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// FindWithApplicants additionally expands each application's applicant,
	// newest application first.
	FindWithApplicants(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// Search matches keyword against title or description, case-insensitively.
	Search(ctx context.Context, keyword string) ([]entity.Job, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]entity.Job, error)
	AddViews(ctx context.Context, id uuid.UUID, delta int) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Omit("Company", "Creator", "Applications").Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("applications.created_at desc")
		}).
		First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindWithApplicants(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("applications.created_at desc")
		}).
		Preload("Applications.Applicant").
		Preload("Applications.Applicant.Profile").
		First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Search(ctx context.Context, keyword string) ([]entity.Job, error) {
	jobs := []entity.Job{}
	query := r.db.WithContext(ctx).Preload("Company")

	if keyword = strings.TrimSpace(keyword); keyword != "" {
		pattern := "%" + escapeLike(keyword) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]entity.Job, error) {
	jobs := []entity.Job{}
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("created_by = ?", userID).
		Order("created_at desc").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) AddViews(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}

// escapeLike makes %, _ and \ in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
