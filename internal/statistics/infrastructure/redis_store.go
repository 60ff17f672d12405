package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"historian/internal/statistics/domain"
	"historian/pkg/utils"
)

const defaultKeyPrefix = "historian"

// RedisStore implements domain.Store on Redis. Documents live in one hash per
// kind; sorted sets scored by sample time index them globally and per node.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

type redisEnvelope struct {
	ID     string          `json:"id"`
	Time   float64         `json:"time"`
	NodeID string          `json:"nodeId,omitempty"`
	Body   json.RawMessage `json:"body"`
}

// NewRedisStore creates a store. An empty prefix uses "historian".
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) docsKey(kind domain.Kind) string {
	return utils.JoinKey(s.keyPrefix, "docs", string(kind))
}

func (s *RedisStore) indexKey(kind domain.Kind, nodeID string) string {
	return utils.JoinKey(s.keyPrefix, "index", string(kind), nodeID)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Append stores the document and both index entries in one transaction
func (s *RedisStore) Append(ctx context.Context, record domain.Record) error {
	if !record.Kind.Valid() {
		return fmt.Errorf("unknown record kind %q", record.Kind)
	}

	doc, err := json.Marshal(redisEnvelope{
		ID:     record.ID,
		Time:   record.Time,
		NodeID: record.NodeID,
		Body:   record.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", record.Kind, err)
	}

	member := redis.Z{Score: record.Time, Member: record.ID}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docsKey(record.Kind), record.ID, doc)
		pipe.ZAdd(ctx, s.indexKey(record.Kind, ""), member)
		if record.NodeID != "" {
			pipe.ZAdd(ctx, s.indexKey(record.Kind, record.NodeID), member)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store %s record: %w", record.Kind, err)
	}
	return nil
}

// MostRecent returns the newest record with time >= since
func (s *RedisStore) MostRecent(ctx context.Context, kind domain.Kind, since float64, nodeID string) (domain.Record, error) {
	ids, err := s.client.ZRevRangeByScore(ctx, s.indexKey(kind, nodeID), &redis.ZRangeBy{
		Min:   score(since),
		Max:   "+inf",
		Count: 1,
	}).Result()
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to query latest %s record: %w", kind, err)
	}
	if len(ids) == 0 {
		return domain.Record{}, domain.ErrNotFound
	}

	records, err := s.load(ctx, kind, ids)
	if err != nil {
		return domain.Record{}, err
	}
	if len(records) == 0 {
		return domain.Record{}, domain.ErrNotFound
	}
	return records[0], nil
}

// Since returns every record with time >= since, oldest first
func (s *RedisStore) Since(ctx context.Context, kind domain.Kind, since float64, nodeID string) ([]domain.Record, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.indexKey(kind, nodeID), &redis.ZRangeBy{
		Min: score(since),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", kind, err)
	}
	return s.load(ctx, kind, ids)
}

// List returns records newest first with optional filters
func (s *RedisStore) List(ctx context.Context, kind domain.Kind, filters domain.RecordFilters) ([]domain.Record, error) {
	limit := int64(defaultListLimit)
	if filters.Limit > 0 {
		limit = int64(filters.Limit)
	}

	rangeBy := &redis.ZRangeBy{Min: "-inf", Max: "+inf", Offset: int64(filters.Offset), Count: limit}
	if filters.From != nil {
		rangeBy.Min = score(*filters.From)
	}
	if filters.To != nil {
		rangeBy.Max = score(*filters.To)
	}

	ids, err := s.client.ZRevRangeByScore(ctx, s.indexKey(kind, filters.NodeID), rangeBy).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return s.load(ctx, kind, ids)
}

// load fetches documents in the order of ids. Index entries without a
// document are dropped.
func (s *RedisStore) load(ctx context.Context, kind domain.Kind, ids []string) ([]domain.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, s.docsKey(kind), ids...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load %s records: %w", kind, err)
	}

	records := make([]domain.Record, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var env redisEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			return nil, fmt.Errorf("failed to decode %s record %s: %w", kind, ids[i], err)
		}
		records = append(records, domain.Record{
			ID:     env.ID,
			Kind:   kind,
			Time:   env.Time,
			NodeID: env.NodeID,
			Body:   env.Body,
		})
	}
	return records, nil
}
