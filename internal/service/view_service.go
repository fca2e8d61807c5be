package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const viewKeyFormat = "post:views:%d"

// ViewService tracks post view counters in Redis. Counts are best-effort;
// they are not part of any authorization decision.
type ViewService struct {
	client *redis.Client
}

// NewViewService builds the service.
func NewViewService(client *redis.Client) *ViewService {
	return &ViewService{client: client}
}

// RecordView increments the view counter for a post.
func (s *ViewService) RecordView(ctx context.Context, postID int) (int64, error) {
	return s.client.Incr(ctx, fmt.Sprintf(viewKeyFormat, postID)).Result()
}

// ViewCount reads the current counter. A key that was never incremented
// reads as zero.
func (s *ViewService) ViewCount(ctx context.Context, postID int) (int64, error) {
	count, err := s.client.Get(ctx, fmt.Sprintf(viewKeyFormat, postID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}
