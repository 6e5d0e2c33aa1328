package repository

import (
	"context"

	"anoa.com/jobportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create relies on the (job_id, applicant_id) unique index; a duplicate
	// surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*entity.Application, error)
	FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]entity.Application, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.db.WithContext(ctx).Omit("Job", "Applicant").Create(application).Error
}

// FindByID loads the application with its job, which carries the owner id.
func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	if err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]entity.Application, error) {
	applications := []entity.Application{}
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Where("applicant_id = ?", applicantID).
		Order("created_at desc").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
