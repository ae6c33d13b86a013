package redisad

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"wayfinder/internal/adapters/observability"
	"wayfinder/internal/domain"
)

// Sessions keeps login sessions in Redis under an opaque random token, so
// they survive process restarts and expire server-side via TTL.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func key(token string) string { return "session:" + token }

func (s *Sessions) Create(ctx context.Context, sess domain.Session, ttl time.Duration) (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf[:])

	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.c.Set(ctx, key(token), b, ttl).Err(); err != nil {
		return "", err
	}
	observability.ObserveSession("create")
	return token, nil
}

func (s *Sessions) Get(ctx context.Context, token string) (domain.Session, bool, error) {
	v, err := s.c.Get(ctx, key(token)).Bytes()
	if err == redis.Nil {
		observability.ObserveSession("miss")
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return domain.Session{}, false, err
	}
	observability.ObserveSession("hit")
	return sess, true, nil
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	observability.ObserveSession("delete")
	return s.c.Del(ctx, key(token)).Err()
}
