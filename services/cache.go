package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

// CacheService is the tag-indexed read cache in front of the ORM. Keys carry
// a TTL; every key is also indexed into the sets of its tags so a mutation
// can drop a whole family of cached reads with InvalidateTags.
type CacheService struct {
	appContext.DefaultService

	redisSvc *RedisService
	ttl      time.Duration
}

const CACHE_SVC = "cache_svc"

const cacheTagPrefix = "cache:tag:"

func (svc CacheService) Id() string {
	return CACHE_SVC
}

func (svc *CacheService) Configure(ctx *appContext.Context) error {
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	svc.ttl = 5 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *CacheService) Start() error {
	return nil
}

// Remember returns the cached value under key, or runs loader, caches its
// result under key and indexes the key into each tag set. Cache failures are
// logged and fall through to the loader; the cache never breaks a read.
func (svc *CacheService) Remember(ctx context.Context, key string, tags []string, dest interface{}, loader func() (interface{}, error)) error {
	cached, err := svc.redisSvc.Get(ctx, key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if cached != "" {
		if err := sonic.UnmarshalString(cached, dest); err == nil {
			return nil
		}
		// Corrupt entry: drop it and reload.
		_ = svc.redisSvc.Delete(ctx, key)
	}

	value, err := loader()
	if err != nil {
		return err
	}

	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}

	if err := svc.redisSvc.Set(ctx, key, data, svc.ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache write failed")
	} else {
		for _, tag := range tags {
			if err := svc.redisSvc.SAdd(ctx, cacheTagPrefix+tag, key); err != nil {
				log.WithError(err).WithField("tag", tag).Warn("Cache tag index failed")
			}
		}
	}

	return sonic.Unmarshal(data, dest)
}

// InvalidateTags deletes every key indexed under the given tags plus the tag
// sets themselves.
func (svc *CacheService) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		tagKey := cacheTagPrefix + tag

		keys, err := svc.redisSvc.SMembers(ctx, tagKey)
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := svc.redisSvc.Delete(ctx, keys...); err != nil {
				return err
			}
		}

		if err := svc.redisSvc.Delete(ctx, tagKey); err != nil {
			return err
		}
	}
	return nil
}
