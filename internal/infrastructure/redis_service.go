package infrastructure

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisService is a best-effort session token cache mapping
// "token:<token>" -> user id. The database remains the source of truth for
// the active token set; the cache only short-circuits the user id lookup.
// When Redis is unreachable the service degrades to a no-op.
type RedisService struct {
	client *redis.Client
}

func NewRedisService() *RedisService {
	if redisURL := GetEnvAsString("REDIS_URL", ""); redisURL != "" {
		if opt, err := redis.ParseURL(redisURL); err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(context.Background()).Err(); err == nil {
				log.Printf("connected to redis at %s", opt.Addr)
				return &RedisService{client: client}
			}
		}
	}

	addr := fmt.Sprintf("%s:%s",
		GetEnvAsString("REDIS_HOST", "localhost"),
		GetEnvAsString("REDIS_PORT", "6379"))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnvAsString("REDIS_PASSWORD", ""),
		DB:       GetEnvAsInt("REDIS_DB", 0),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable at %s, token cache disabled: %v", addr, err)
		return &RedisService{client: nil}
	}

	log.Printf("connected to redis at %s", addr)
	return &RedisService{client: client}
}

// NewDisabledRedisService returns a no-op cache. Used in tests.
func NewDisabledRedisService() *RedisService {
	return &RedisService{client: nil}
}

func (r *RedisService) SetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, "token:"+token, userID, ttl).Err()
}

// GetToken returns the cached user id for token, or "" on miss.
func (r *RedisService) GetToken(ctx context.Context, token string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	userID, err := r.client.Get(ctx, "token:"+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (r *RedisService) DeleteToken(ctx context.Context, tokens ...string) error {
	if r.client == nil || len(tokens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keys = append(keys, "token:"+token)
	}
	return r.client.Del(ctx, keys...).Err()
}
