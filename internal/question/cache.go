package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/metrics"
)

const (
	defaultCacheTTL = 5 * time.Minute

	questionsKey  = "trivia:snapshot:questions"
	categoriesKey = "trivia:snapshot:categories"
)

// SnapshotCache holds whole-bank snapshots (implemented by Redis-backed Cache).
// A miss is reported as ok=false with a nil error.
type SnapshotCache interface {
	Questions(ctx context.Context) ([]Question, bool, error)
	SetQuestions(ctx context.Context, qs []Question) error
	Categories(ctx context.Context) ([]Category, bool, error)
	SetCategories(ctx context.Context, cats []Category) error
	Invalidate(ctx context.Context) error
}

// Cache stores snapshots as JSON blobs in Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SnapshotCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Questions(ctx context.Context) ([]Question, bool, error) {
	var qs []Question
	ok, err := c.get(ctx, questionsKey, &qs)
	return qs, ok, err
}

func (c *Cache) SetQuestions(ctx context.Context, qs []Question) error {
	return c.set(ctx, questionsKey, qs)
}

func (c *Cache) Categories(ctx context.Context) ([]Category, bool, error) {
	var cats []Category
	ok, err := c.get(ctx, categoriesKey, &cats)
	return cats, ok, err
}

func (c *Cache) SetCategories(ctx context.Context, cats []Category) error {
	return c.set(ctx, categoriesKey, cats)
}

// Invalidate drops the question snapshot. Categories are read-only and expire by TTL.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, questionsKey).Err()
}

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// CachedStore serves list reads from a SnapshotCache and invalidates it on writes.
// Cache failures are logged and fall through to the wrapped Store.
type CachedStore struct {
	inner  Store
	cache  SnapshotCache
	logger zerolog.Logger
}

var _ Store = (*CachedStore)(nil)

func NewCachedStore(inner Store, cache SnapshotCache, logger zerolog.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		logger: logger.With().Str("component", "question_cache").Logger(),
	}
}

func (s *CachedStore) ListQuestions(ctx context.Context) ([]Question, error) {
	qs, ok, err := s.cache.Questions(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("question snapshot read failed")
	}
	metrics.ObserveCache("questions", ok)
	if ok {
		return qs, nil
	}

	qs, err = s.inner.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetQuestions(ctx, qs); err != nil {
		s.logger.Warn().Err(err).Msg("question snapshot write failed")
	}
	return qs, nil
}

// ListByCategory filters the cached snapshot, which keeps id order.
func (s *CachedStore) ListByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	all, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(all))
	for _, q := range all {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *CachedStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	return s.inner.GetQuestion(ctx, id)
}

func (s *CachedStore) ListCategories(ctx context.Context) ([]Category, error) {
	cats, ok, err := s.cache.Categories(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("category snapshot read failed")
	}
	metrics.ObserveCache("categories", ok)
	if ok {
		return cats, nil
	}

	cats, err = s.inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCategories(ctx, cats); err != nil {
		s.logger.Warn().Err(err).Msg("category snapshot write failed")
	}
	return cats, nil
}

func (s *CachedStore) InsertQuestion(ctx context.Context, nq NewQuestion) (Question, error) {
	q, err := s.inner.InsertQuestion(ctx, nq)
	if err != nil {
		return Question{}, err
	}
	s.invalidate(ctx)
	return q, nil
}

func (s *CachedStore) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.inner.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("question snapshot invalidation failed")
	}
}
