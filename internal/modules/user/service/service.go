package user

import (
	"context"
	"errors"
	"log"
	"strings"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/user/dto"
	"anoa.com/jobportal/internal/modules/user/repository"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/storage"
	"anoa.com/jobportal/pkg/token"
	"anoa.com/jobportal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passwordCost = 10

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput, avatar *commonDto.FileUpload) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResult, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, resume *commonDto.FileUpload) (*entity.User, error)
}

type authService struct {
	repo    repository.UserRepository
	storage storage.FileStorage
	tokens  *token.Manager
}

func NewAuthService(repo repository.UserRepository, fileStorage storage.FileStorage, tokens *token.Manager) AuthService {
	return &authService{
		repo:    repo,
		storage: fileStorage,
		tokens:  tokens,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput, avatar *commonDto.FileUpload) (*entity.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashed),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Role:         input.Role,
		Profile:      entity.Profile{Skills: []string{}},
	}

	if avatar != nil && avatar.Reader != nil && s.storage != nil {
		url, err := s.storage.Upload(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		user.Profile.ProfilePhoto = url
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.discard(user.Profile.ProfilePhoto)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResult, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !strings.EqualFold(strings.TrimSpace(input.Role), user.Role) {
		return nil, apperror.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{User: user, Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.findUser(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, resume *commonDto.FileUpload) (*entity.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	input.Email = normalizeEmail(input.Email)
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.FullName); v != "" {
		user.FullName = v
	}
	if input.Email != "" && input.Email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing.ID != user.ID {
			return nil, apperror.ErrDuplicateUser
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}
	if v := strings.TrimSpace(input.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if v := strings.TrimSpace(input.Bio); v != "" {
		user.Profile.Bio = v
	}
	if strings.TrimSpace(input.Skills) != "" {
		user.Profile.Skills = commonDto.SplitCSV(input.Skills)
	}

	var previousResume, uploaded string
	if resume != nil && resume.Reader != nil && s.storage != nil {
		url, err := s.storage.Upload(ctx, resume.Reader, "resumes", resume.FileName)
		if err != nil {
			return nil, err
		}
		previousResume, uploaded = user.Profile.Resume, url
		user.Profile.Resume = url
		user.Profile.ResumeOriginalName = resume.FileName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.discard(uploaded)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateUser
		}
		return nil, err
	}

	s.discard(previousResume)
	return user, nil
}

func (s *authService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// discard removes a hosted file without failing the caller.
func (s *authService) discard(url string) {
	if url == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.Background(), url); err != nil {
		log.Printf("⚠️  failed to delete file %s: %v", url, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
