package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is the small last-writer-wins key-value layer shared across screens:
// the access-token reference written once at login, and the last-viewed
// project id written on every project-detail view. Writes are infrequent and
// per-member, so no locking beyond Redis itself is needed.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a session store on the given Redis client
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func tokenKey(memberID int64) string {
	return fmt.Sprintf("session:token:%d", memberID)
}

func lastProjectKey(memberID int64) string {
	return fmt.Sprintf("session:last-project:%d", memberID)
}

// SetAccessToken stores the member's access token reference
func (s *Store) SetAccessToken(ctx context.Context, memberID int64, token string) error {
	return s.rdb.Set(ctx, tokenKey(memberID), token, s.ttl).Err()
}

// AccessToken returns the member's stored access token, or found=false when
// none is stored
func (s *Store) AccessToken(ctx context.Context, memberID int64) (string, bool, error) {
	token, err := s.rdb.Get(ctx, tokenKey(memberID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

// ClearAccessToken removes the member's access token reference
func (s *Store) ClearAccessToken(ctx context.Context, memberID int64) error {
	return s.rdb.Del(ctx, tokenKey(memberID)).Err()
}

// SetLastViewedProject records the project the member viewed last
func (s *Store) SetLastViewedProject(ctx context.Context, memberID, projectID int64) error {
	return s.rdb.Set(ctx, lastProjectKey(memberID), projectID, s.ttl).Err()
}

// LastViewedProject returns the last-viewed project id, or found=false when
// the member has not viewed one yet
func (s *Store) LastViewedProject(ctx context.Context, memberID int64) (int64, bool, error) {
	projectID, err := s.rdb.Get(ctx, lastProjectKey(memberID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return projectID, true, nil
}
