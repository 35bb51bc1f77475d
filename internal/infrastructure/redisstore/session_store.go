package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
	"github.com/oksasatya/netmovie-accounts/internal/domain/repository"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
)

func sessionKey(id string) string {
	return "user:session:" + id
}

// SessionStore keeps each session as a JSON value whose Redis TTL ends at
// the session's ExpiresAt.
type SessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return helpers.RedisSetJSON(ctx, s.rdb, sessionKey(sess.ID), sess, ttl)
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	var sess entity.Session
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(id), &sess)
	if err != nil {
		return nil, err
	}
	if !ok || sess.Expired(s.now()) {
		return nil, repository.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, s.rdb, sessionKey(id))
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

var _ repository.SessionStore = (*SessionStore)(nil)
