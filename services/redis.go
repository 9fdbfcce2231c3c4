package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"

	"github.com/jaikeex/cookhound-api/shared"
)

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

func (svc *RedisService) GetClient() *redis.Client {
	return svc.redis
}

func (svc *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	var data []byte
	var err error

	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

func (svc *RedisService) Get(ctx context.Context, key string) (string, error) {
	if svc.redis == nil {
		return "", fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return result, err
}

func (svc *RedisService) Delete(ctx context.Context, keys ...string) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Del(ctx, keys...).Err()
}

func (svc *RedisService) TTL(ctx context.Context, key string) (time.Duration, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.TTL(ctx, key).Result()
}

func (svc *RedisService) SAdd(ctx context.Context, key string, members ...interface{}) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.SAdd(ctx, key, members...).Err()
}

func (svc *RedisService) SMembers(ctx context.Context, key string) ([]string, error) {
	if svc.redis == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.SMembers(ctx, key).Result()
}

func (svc *RedisService) LPush(ctx context.Context, key string, values ...interface{}) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.LPush(ctx, key, values...).Err()
}

func (svc *RedisService) BRPop(ctx context.Context, timeout time.Duration, keys ...string) ([]string, error) {
	if svc.redis == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.BRPop(ctx, timeout, keys...).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return result, err
}

func (svc *RedisService) Keys(ctx context.Context, pattern string) ([]string, error) {
	if svc.redis == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Keys(ctx, pattern).Result()
}

// ==================== RATE LIMIT COUNTER STORE ====================

// incrWindowScript starts or bumps a fixed window in one round trip. The
// INCR and PEXPIRE run atomically inside Redis, so two concurrent requests
// can never both observe a stale count.
var incrWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

type redisCounterStore struct {
	client *redis.Client
}

// CounterStore exposes the Redis-backed shared.CounterStore used by the rate
// limiter.
func (svc *RedisService) CounterStore() shared.CounterStore {
	return &redisCounterStore{client: svc.redis}
}

func (s *redisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := incrWindowScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("running counter script: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected counter script result: %T", res)
	}

	count, ok := values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected count type: %T", values[0])
	}

	ttlMS, ok := values[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected ttl type: %T", values[1])
	}
	if ttlMS < 0 {
		ttlMS = window.Milliseconds()
	}

	return count, time.Duration(ttlMS) * time.Millisecond, nil
}

func (s *redisCounterStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
