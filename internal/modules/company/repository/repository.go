package repository

import (
	"context"

	"anoa.com/jobportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByName(ctx context.Context, name string) (*entity.Company, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByName is an exact, case-sensitive match.
func (r *companyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Company, error) {
	companies := []entity.Company{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(company).Error
}
