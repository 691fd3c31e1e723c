package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"fogwalk/internal/explore"
	"fogwalk/internal/stats"
)

// 文档注释：Redis 键值持久化
// 背景：两份 blob 直接以固定键存整串 JSON；键前缀可配置以支持多实例共用一个 Redis。
// 约束：不设置 TTL，探索历史是长期数据；redis.Nil 视为缺键而非错误
type RedisStore struct {
	rc     *redis.Client
	prefix string
}

func NewRedisStore(rc *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rc: rc, prefix: prefix}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) LoadAreas(ctx context.Context) ([]explore.AreaRecord, error) {
	b, err := s.rc.Get(ctx, s.key(KeyAreas)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeAreas(b), nil
}

func (s *RedisStore) SaveAreas(ctx context.Context, areas []explore.AreaRecord) error {
	b, err := json.Marshal(areas)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, s.key(KeyAreas), b, 0).Err()
}

func (s *RedisStore) LoadStats(ctx context.Context) (*stats.Snapshot, error) {
	b, err := s.rc.Get(ctx, s.key(KeyStats)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeStats(b), nil
}

func (s *RedisStore) SaveStats(ctx context.Context, snap stats.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, s.key(KeyStats), b, 0).Err()
}

func (s *RedisStore) Reset(ctx context.Context) error {
	return s.rc.Del(ctx, s.key(KeyAreas), s.key(KeyStats)).Err()
}
