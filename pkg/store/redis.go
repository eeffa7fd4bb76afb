package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/observability"
)

// RedisStore keeps each map in a redis string under "<prefix>map:<name>"
// and tracks the names in the set "<prefix>maps".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store over client. The client is closed by Close.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string { return s.prefix + "map:" + name }
func (s *RedisStore) index() string          { return s.prefix + "maps" }

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := apperrors.ValidateMapName(name); err != nil {
		return nil, err
	}
	doc, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Store().OnGet(ctx, "redis", name, false, nil)
		return nil, ErrNotFound
	}
	observability.Store().OnGet(ctx, "redis", name, err == nil, err)
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	return doc, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, doc []byte) error {
	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(name), doc, 0)
		pipe.SAdd(ctx, s.index(), name)
		return nil
	})
	observability.Store().OnPut(ctx, "redis", name, len(doc), err)
	if err != nil {
		return fmt.Errorf("redis put %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.index(), name)
		return nil
	})
	if err != nil {
		observability.Store().OnDelete(ctx, "redis", name, err)
		return fmt.Errorf("redis delete %s: %w", name, err)
	}
	if del.Val() == 0 {
		observability.Store().OnDelete(ctx, "redis", name, ErrNotFound)
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, "redis", name, nil)
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.index()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
