// Package cache keeps hot tutor profiles in Redis. The booking core never
// reads from it; it only serves the public profile endpoint.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tutorhub/internal/domain"
)

var (
	// ErrMiss is returned when the profile is not cached.
	ErrMiss = errors.New("cache: key not found")
)

const (
	PrefixTutor = "tutor:"

	DefaultTTL = 5 * time.Minute
)

// TutorCache stores public tutor profiles.
type TutorCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error)
	Set(ctx context.Context, t *domain.TutorProfile) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

func TutorKey(id uuid.UUID) string {
	return PrefixTutor + id.String()
}

// Redis is the go-redis backed TutorCache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects using a redis:// URL and pings once.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisWithClient(client, ttl), nil
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error) {
	raw, err := r.client.Get(ctx, TutorKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeTutor(raw)
}

func (r *Redis) Set(ctx context.Context, t *domain.TutorProfile) error {
	raw, err := encodeTutor(t)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, TutorKey(t.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, TutorKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func encodeTutor(t *domain.TutorProfile) ([]byte, error) {
	if t == nil {
		return nil, errors.New("cache: nil tutor")
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("cache: encode tutor: %w", err)
	}
	return raw, nil
}

func decodeTutor(raw []byte) (*domain.TutorProfile, error) {
	var t domain.TutorProfile
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("cache: decode tutor: %w", err)
	}
	return &t, nil
}

// Nop never stores anything. Used when REDIS_URL is empty.
type Nop struct{}

func (Nop) Get(context.Context, uuid.UUID) (*domain.TutorProfile, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, *domain.TutorProfile) error              { return nil }
func (Nop) Invalidate(context.Context, uuid.UUID) error                  { return nil }
