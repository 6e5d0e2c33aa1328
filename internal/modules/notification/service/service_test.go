package notification_test

import (
	"context"
	"testing"

	"anoa.com/jobportal/internal/entity"
	notification "anoa.com/jobportal/internal/modules/notification/service"
	"anoa.com/jobportal/internal/testutil"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, svc notification.NotificationService, userID uuid.UUID, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		row := &entity.Notification{
			UserID:     userID,
			EntityID:   uuid.New(),
			EntityType: "application",
			Type:       entity.NotificationApplicationReceived,
			Message:    "New application received",
		}
		require.NoError(t, svc.CreateNotification(context.Background(), row))
		ids = append(ids, row.ID)
	}
	return ids
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "user_notifications:abc", notification.Channel("abc"))
}

func TestGetNotificationsPaginates(t *testing.T) {
	ctx := context.Background()
	svc := notification.NewNotificationService(&testutil.NotificationRepo{S: testutil.NewStore()}, nil)
	user := uuid.New()
	ids := seed(t, svc, user, 5)

	res, err := svc.GetNotifications(ctx, user, commonDto.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, res.Notifications, 2)
	assert.Equal(t, ids[2], res.Notifications[0].ID)
	assert.EqualValues(t, 5, res.Meta.TotalItems)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, 2, res.Meta.CurrentPage)
}

func TestMarkAsReadIsScopedToReceiver(t *testing.T) {
	ctx := context.Background()
	svc := notification.NewNotificationService(&testutil.NotificationRepo{S: testutil.NewStore()}, nil)
	owner, stranger := uuid.New(), uuid.New()
	ids := seed(t, svc, owner, 2)

	err := svc.MarkAsRead(ctx, ids[0].String(), stranger)
	assert.ErrorIs(t, err, apperror.ErrNotificationNotFound)

	err = svc.MarkAsRead(ctx, "bogus", owner)
	assert.ErrorIs(t, err, apperror.ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(ctx, ids[0].String(), owner))
	unread, err := svc.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	unread, err = svc.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
