package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
	"leadbridge/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "leadbridge:batch:"

type RedisReportStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportStore(client *redis.Client, ttl time.Duration) repository.IReportStore {
	return &RedisReportStore{client: client, ttl: ttl}
}

func (s *RedisReportStore) Save(ctx context.Context, batch *model.Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode batch %s: %w", batch.ID, err)
	}
	if err := s.client.Set(ctx, reportKeyPrefix+batch.ID, data, s.ttl).Err(); err != nil {
		logger.GetLogger().WithField("batch_id", batch.ID).WithField("error", err).Error("Error while saving batch report")
		return err
	}
	return nil
}

func (s *RedisReportStore) Get(ctx context.Context, id string) (*model.Batch, error) {
	data, err := s.client.Get(ctx, reportKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}
	var batch model.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", id, err)
	}
	return &batch, nil
}

// MemoryReportStore keeps batches in process memory, used when Redis is not configured.
type MemoryReportStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	batches map[string]memoryEntry
}

type memoryEntry struct {
	batch     *model.Batch
	expiresAt time.Time
}

func NewMemoryReportStore(ttl time.Duration) *MemoryReportStore {
	return &MemoryReportStore{
		ttl:     ttl,
		now:     time.Now,
		batches: make(map[string]memoryEntry),
	}
}

func (s *MemoryReportStore) Save(_ context.Context, batch *model.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.batches {
		if now.After(e.expiresAt) {
			delete(s.batches, id)
		}
	}
	s.batches[batch.ID] = memoryEntry{batch: batch, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryReportStore) Get(_ context.Context, id string) (*model.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.batches[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, model.ErrBatchNotFound
	}
	return e.batch, nil
}
