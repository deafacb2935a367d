package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/waymark/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used when WithPrefix is not given.
const DefaultPrefix = "waymark:resource:"

// Store implements ports.ResourceStore using Redis.
//
// Records live under "<prefix><kind>:<id>" as JSON. Each kind has a sorted
// set "<prefix>index:<kind>" scored by expiry, pruned lazily by List.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// storedRecord is the persisted form. domain.Record marshals to its
// representation, which omits the kind.
type storedRecord struct {
	Kind       string         `json:"kind"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func (s *Store) key(kind, id string) string {
	return s.prefix + kind + ":" + id
}

func (s *Store) indexKey(kind string) string {
	return s.prefix + "index:" + kind
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save persists the record to Redis.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(storedRecord{Kind: rec.Kind, ID: rec.ID, Attributes: rec.Attributes})
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()

	// Use 0 for no expiration if ttl is not set.
	pipe.Set(ctx, s.key(rec.Kind, rec.ID), data, s.ttl)

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(rec.Kind), backend.Z{
		Score:  score,
		Member: rec.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the record from Redis.
func (s *Store) Load(ctx context.Context, kind, id string) (*domain.Record, error) {
	val, err := s.client.Get(ctx, s.key(kind, id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var stored storedRecord
	dec := json.NewDecoder(strings.NewReader(val))
	dec.UseNumber()
	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return domain.NewRecord(stored.Kind, stored.ID, stored.Attributes), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(kind, id))
	pipe.ZRem(ctx, s.indexKey(kind), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the live ids of kind.
func (s *Store) List(ctx context.Context, kind string) ([]string, error) {
	// Lazy cleanup: remove expired ids from the index
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(kind), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired records: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(kind), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
