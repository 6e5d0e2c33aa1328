package view

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	pendingKey = "pending:job_views"
	viewerTTL  = time.Hour
)

// ViewStore persists flushed counters.
type ViewStore interface {
	AddViews(ctx context.Context, jobID uuid.UUID, delta int) error
}

type ViewService interface {
	// IncrementView counts at most one view per viewer per job per hour.
	IncrementView(ctx context.Context, jobID uuid.UUID, viewer string) error
	SyncViews(ctx context.Context)
	StartViewSyncWorker(ctx context.Context, interval time.Duration)
}

type viewService struct {
	redisClient *redis.Client
	store       ViewStore
}

func NewViewService(redisClient *redis.Client, store ViewStore) ViewService {
	return &viewService{
		redisClient: redisClient,
		store:       store,
	}
}

func viewsKey(jobID string) string {
	return fmt.Sprintf("job:views:%s", jobID)
}

func (s *viewService) IncrementView(ctx context.Context, jobID uuid.UUID, viewer string) error {
	if s.redisClient == nil || viewer == "" {
		return nil
	}

	viewerKey := fmt.Sprintf("job:viewer:%s:%s", jobID, viewer)
	first, err := s.redisClient.SetNX(ctx, viewerKey, "viewed", viewerTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to mark viewer: %w", err)
	}
	if !first {
		return nil
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Incr(ctx, viewsKey(jobID.String()))
	pipe.SAdd(ctx, pendingKey, jobID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment view: %w", err)
	}
	return nil
}

// SyncViews moves buffered counters into the database. GETDEL makes a view
// recorded during the flush land in the next round instead of being lost.
func (s *viewService) SyncViews(ctx context.Context) {
	if s.redisClient == nil {
		return
	}

	jobIDs, err := s.redisClient.SMembers(ctx, pendingKey).Result()
	if err != nil {
		log.Printf("❌ Error getting pending job views: %v", err)
		return
	}
	if len(jobIDs) == 0 {
		return
	}

	synced := 0
	for _, raw := range jobIDs {
		if err := s.redisClient.SRem(ctx, pendingKey, raw).Err(); err != nil {
			log.Printf("❌ Failed to pop pending job %s: %v", raw, err)
			continue
		}

		jobID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}

		countStr, err := s.redisClient.GetDel(ctx, viewsKey(raw)).Result()
		if err != nil {
			if err != redis.Nil {
				log.Printf("❌ Error reading view count for job %s: %v", raw, err)
			}
			continue
		}

		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			continue
		}

		if err := s.store.AddViews(ctx, jobID, count); err != nil {
			log.Printf("❌ Failed to update views for job %s: %v", raw, err)
			// Put the count back so it is retried on the next tick.
			s.redisClient.IncrBy(ctx, viewsKey(raw), int64(count))
			s.redisClient.SAdd(ctx, pendingKey, raw)
			continue
		}
		synced++
	}

	log.Printf("👀 Synced views for %d job(s)", synced)
}

func (s *viewService) StartViewSyncWorker(ctx context.Context, interval time.Duration) {
	if s.redisClient == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SyncViews(ctx)
		case <-ctx.Done():
			s.SyncViews(context.Background())
			return
		}
	}
}
