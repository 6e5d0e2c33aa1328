package company

import (
	"context"
	"errors"
	"log"
	"strings"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/company/dto"
	"anoa.com/jobportal/internal/modules/company/repository"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/storage"
	"anoa.com/jobportal/pkg/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyService interface {
	RegisterCompany(ctx context.Context, input dto.RegisterCompanyInput, ownerID uuid.UUID) (*entity.Company, error)
	ListOwnCompanies(ctx context.Context, ownerID uuid.UUID) ([]entity.Company, error)
	GetCompany(ctx context.Context, companyID string) (*entity.Company, error)
	UpdateCompany(ctx context.Context, companyID string, input dto.UpdateCompanyInput, logo *commonDto.FileUpload, callerID uuid.UUID) (*entity.Company, error)
}

type companyService struct {
	repo    repository.CompanyRepository
	storage storage.FileStorage
}

func NewCompanyService(repo repository.CompanyRepository, fileStorage storage.FileStorage) CompanyService {
	return &companyService{
		repo:    repo,
		storage: fileStorage,
	}
}

func (s *companyService) RegisterCompany(ctx context.Context, input dto.RegisterCompanyInput, ownerID uuid.UUID) (*entity.Company, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	if input.CompanyName == "" {
		return nil, apperror.ErrMissingName
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, input.CompanyName, uuid.Nil); err != nil {
		return nil, err
	}

	company := &entity.Company{
		Name:   input.CompanyName,
		UserID: ownerID,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateCompany
		}
		return nil, err
	}

	return company, nil
}

func (s *companyService) ListOwnCompanies(ctx context.Context, ownerID uuid.UUID) ([]entity.Company, error) {
	companies, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []entity.Company{}
	}
	return companies, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*entity.Company, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, apperror.ErrCompanyNotFound
	}

	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, input dto.UpdateCompanyInput, logo *commonDto.FileUpload, callerID uuid.UUID) (*entity.Company, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.UserID != callerID {
		return nil, apperror.ErrNotOwner
	}

	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != company.Name {
		if err := s.ensureNameFree(ctx, name, company.ID); err != nil {
			return nil, err
		}
		company.Name = name
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		company.Description = v
	}
	if v := strings.TrimSpace(input.Website); v != "" {
		company.Website = v
	}
	if v := strings.TrimSpace(input.Location); v != "" {
		company.Location = v
	}

	var previousLogo, uploaded string
	if logo != nil && logo.Reader != nil && s.storage != nil {
		url, err := s.storage.Upload(ctx, logo.Reader, "logos", logo.FileName)
		if err != nil {
			return nil, err
		}
		previousLogo, uploaded = company.Logo, url
		company.Logo = url
	}

	if err := s.repo.Update(ctx, company); err != nil {
		s.discard(uploaded)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateCompany
		}
		return nil, err
	}

	s.discard(previousLogo)
	return company, nil
}

// ensureNameFree fails with ErrDuplicateCompany when another company holds name.
func (s *companyService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil && existing.ID != self {
		return apperror.ErrDuplicateCompany
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *companyService) discard(url string) {
	if url == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.Background(), url); err != nil {
		log.Printf("⚠️  failed to delete logo %s: %v", url, err)
	}
}
