package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/application/dto"
	"anoa.com/jobportal/internal/modules/application/repository"
	jobRepo "anoa.com/jobportal/internal/modules/job/repository"
	notification "anoa.com/jobportal/internal/modules/notification/service"
	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/events"
	"anoa.com/jobportal/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const applyAction = "apply"

type ApplicationService interface {
	Apply(ctx context.Context, jobID string, applicantID uuid.UUID) (*entity.Application, error)
	ListAppliedJobs(ctx context.Context, applicantID uuid.UUID) ([]entity.Application, error)
	ListApplicants(ctx context.Context, jobID string, callerID uuid.UUID) (*entity.Job, error)
	UpdateStatus(ctx context.Context, applicationID string, status string, callerID uuid.UUID) (*entity.Application, error)
}

type Options struct {
	RedisClient   *redis.Client
	ApplyCooldown time.Duration
	Notifications notification.NotificationService
	Events        events.Publisher
}

type applicationService struct {
	repo          repository.ApplicationRepository
	jobs          jobRepo.JobRepository
	redisClient   *redis.Client
	applyCooldown time.Duration
	notifications notification.NotificationService
	events        events.Publisher
}

func NewApplicationService(repo repository.ApplicationRepository, jobs jobRepo.JobRepository, opts Options) ApplicationService {
	publisher := opts.Events
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &applicationService{
		repo:          repo,
		jobs:          jobs,
		redisClient:   opts.RedisClient,
		applyCooldown: opts.ApplyCooldown,
		notifications: opts.Notifications,
		events:        publisher,
	}
}

func (s *applicationService) Apply(ctx context.Context, jobID string, applicantID uuid.UUID) (*entity.Application, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, apperror.ErrMissingJobID
	}
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperror.ErrJobNotFound
	}

	if _, err := s.repo.FindByJobAndApplicant(ctx, id, applicantID); err == nil {
		return nil, apperror.ErrDuplicateApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	if err := ratelimiter.Guard(ctx, s.redisClient, applicantID, applyAction, s.applyCooldown); err != nil {
		return nil, err
	}

	application := &entity.Application{
		JobID:       job.ID,
		ApplicantID: applicantID,
		Status:      entity.StatusPending,
	}
	if err := s.repo.Create(ctx, application); err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, applicantID, applyAction)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateApplication
		}
		return nil, err
	}

	s.notify(ctx, &entity.Notification{
		UserID:     job.CreatedBy,
		ActorID:    &applicantID,
		EntityID:   application.ID,
		EntityType: "application",
		Type:       entity.NotificationApplicationReceived,
		Message:    fmt.Sprintf("New application received for %s", job.Title),
	})
	events.PublishAsync(s.events, events.New(events.ApplicationSubmitted, job.ID.String(), dto.ApplicationSubmittedEvent{
		ApplicationID: application.ID.String(),
		JobID:         job.ID.String(),
		ApplicantID:   applicantID.String(),
		RecruiterID:   job.CreatedBy.String(),
	}))

	return application, nil
}

func (s *applicationService) ListAppliedJobs(ctx context.Context, applicantID uuid.UUID) ([]entity.Application, error) {
	applications, err := s.repo.FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []entity.Application{}
	}
	return applications, nil
}

func (s *applicationService) ListApplicants(ctx context.Context, jobID string, callerID uuid.UUID) (*entity.Job, error) {
	id, err := uuid.Parse(strings.TrimSpace(jobID))
	if err != nil {
		return nil, apperror.ErrJobNotFound
	}

	job, err := s.jobs.FindWithApplicants(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}
	if job.CreatedBy != callerID {
		return nil, apperror.ErrNotOwner
	}
	if job.Applications == nil {
		job.Applications = []entity.Application{}
	}
	return job, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, applicationID string, status string, callerID uuid.UUID) (*entity.Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return nil, apperror.ErrStatusRequired
	}

	id, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return nil, apperror.ErrApplicationNotFound
	}
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrApplicationNotFound
		}
		return nil, err
	}

	if !entity.IsApplicationStatus(status) {
		return nil, apperror.ErrInvalidStatus
	}
	if application.Job == nil || application.Job.CreatedBy != callerID {
		return nil, apperror.ErrNotOwner
	}

	previous := application.Status
	if err := s.repo.UpdateStatus(ctx, application.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrApplicationNotFound
		}
		return nil, err
	}
	application.Status = status

	if previous != status {
		s.notify(ctx, &entity.Notification{
			UserID:     application.ApplicantID,
			ActorID:    &callerID,
			EntityID:   application.ID,
			EntityType: "application",
			Type:       entity.NotificationApplicationStatus,
			Message:    fmt.Sprintf("Your application for %s was marked %s", application.Job.Title, status),
		})
		events.PublishAsync(s.events, events.New(events.ApplicationStatusChanged, application.JobID.String(), dto.ApplicationStatusChangedEvent{
			ApplicationID: application.ID.String(),
			JobID:         application.JobID.String(),
			ApplicantID:   application.ApplicantID.String(),
			Previous:      previous,
			Status:        status,
		}))
	}

	return application, nil
}

// notify never fails the caller.
func (s *applicationService) notify(ctx context.Context, n *entity.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		log.Printf("⚠️  failed to create %s notification for %s: %v", n.Type, n.UserID, err)
	}
}
