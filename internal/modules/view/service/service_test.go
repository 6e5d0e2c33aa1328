package view

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type countingStore struct {
	calls int
}

func (s *countingStore) AddViews(context.Context, uuid.UUID, int) error {
	s.calls++
	return nil
}

func TestViewServiceWithoutRedisIsNoop(t *testing.T) {
	store := &countingStore{}
	svc := NewViewService(nil, store)

	assert.NoError(t, svc.IncrementView(context.Background(), uuid.New(), "user-1"))
	svc.SyncViews(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.StartViewSyncWorker(ctx, time.Millisecond)

	assert.Zero(t, store.calls)
}
