// Package cache holds generated topic artifacts in Redis so repeated reads
// skip the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// TopicCache stores JSON values keyed by artifact kind and topic.
type TopicCache interface {
	Get(ctx context.Context, kind, topic string, dest interface{}) error
	Set(ctx context.Context, kind, topic string, value interface{}) error
	Delete(ctx context.Context, kind, topic string) error
}

// KeyPrefix namespaces every key on a shared Redis.
const KeyPrefix = "learnpath:"

// Key builds keys such as "learnpath:module_content:Variables".
func Key(kind, topic string) string {
	return KeyPrefix + kind + ":" + topic
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, kind, topic string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, Key(kind, topic)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) Set(ctx context.Context, kind, topic string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(kind, topic), data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, kind, topic string) error {
	return c.rdb.Del(ctx, Key(kind, topic)).Err()
}

// Nop never stores anything. Used when Redis is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string, string, interface{}) error { return ErrMiss }
func (Nop) Set(context.Context, string, string, interface{}) error { return nil }
func (Nop) Delete(context.Context, string, string) error           { return nil }

// Memory is an in-process TopicCache, handy for tests and single-node runs.
type Memory struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, kind, topic string, dest interface{}) error {
	m.mu.Lock()
	data, ok := m.items[Key(kind, topic)]
	m.mu.Unlock()
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *Memory) Set(_ context.Context, kind, topic string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[Key(kind, topic)] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, kind, topic string) error {
	m.mu.Lock()
	delete(m.items, Key(kind, topic))
	m.mu.Unlock()
	return nil
}

// Len reports how many entries are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
