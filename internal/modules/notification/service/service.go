package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/notification/dto"
	notifRepo "anoa.com/jobportal/internal/modules/notification/repository"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Channel is the redis pub/sub channel a user's websocket listens on.
func Channel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.Pagination) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// CreateNotification stores the row and, when redis is available, pushes it to
// the receiver's live channel. A failed publish is only logged.
func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err != nil {
			return nil
		}
		if err := s.redisClient.Publish(ctx, Channel(notification.UserID.String()), payload).Err(); err != nil {
			log.Printf("⚠️  failed to publish notification %s: %v", notification.ID, err)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.Pagination) (*dto.NotificationListResponse, error) {
	page = page.Normalize(20, 100)

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		Meta:          commonDto.NewPaginationMeta(page, total),
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrNotificationNotFound
	}

	if err := s.repo.MarkAsRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
