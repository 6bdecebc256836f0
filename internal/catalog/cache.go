package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultAbsoluteExpiry = 5 * time.Minute
	DefaultSlidingExpiry  = 10 * time.Minute

	movieKeyPrefix = "movie:"

	fieldAbsoluteExpiry = "absexp"
	fieldSlidingExpiry  = "sldexp"
	fieldData           = "data"
)

// MovieCache keeps the last successfully fetched snapshot of each catalog movie.
// An entry disappears once its absolute deadline passes or it goes unread for the
// sliding window, whichever comes first.
type MovieCache struct {
	client   redis.UniversalClient
	absolute time.Duration
	sliding  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewMovieCache(client redis.UniversalClient, absolute, sliding time.Duration, logger *slog.Logger) *MovieCache {
	if absolute <= 0 {
		absolute = DefaultAbsoluteExpiry
	}
	if sliding <= 0 {
		sliding = DefaultSlidingExpiry
	}

	return &MovieCache{
		client:   client,
		absolute: absolute,
		sliding:  sliding,
		now:      time.Now,
		logger:   logger,
	}
}

func movieKey(id string) string {
	return movieKeyPrefix + id
}

func (c *MovieCache) Set(ctx context.Context, id string, movie *domain.CatalogMovie) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to encode movie %s: %w", id, err)
	}

	key := movieKey(id)
	deadline := c.now().Add(c.absolute).UnixMilli()

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key,
		fieldAbsoluteExpiry, deadline,
		fieldSlidingExpiry, int64(c.sliding/time.Second),
		fieldData, string(data),
	)
	pipe.PExpire(ctx, key, min(c.sliding, c.absolute))

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cache movie %s: %w", id, err)
	}

	return nil
}

// Get returns the cached snapshot and whether one was present. A hit pushes the
// sliding deadline forward without going past the absolute one.
func (c *MovieCache) Get(ctx context.Context, id string) (*domain.CatalogMovie, bool, error) {
	key := movieKey(id)

	values, err := c.client.HMGet(ctx, key, fieldAbsoluteExpiry, fieldSlidingExpiry, fieldData).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if len(values) != 3 || values[0] == nil || values[1] == nil || values[2] == nil {
		return nil, false, nil
	}

	absolute, err := parseInt(values[0])
	if err != nil {
		return nil, false, err
	}

	sliding, err := parseInt(values[1])
	if err != nil {
		return nil, false, err
	}

	now := c.now()

	remaining := time.UnixMilli(absolute).Sub(now)
	if remaining <= 0 {
		return nil, false, nil
	}

	data, ok := values[2].(string)
	if !ok {
		return nil, false, fmt.Errorf("unexpected cached value type %T", values[2])
	}

	var movie domain.CatalogMovie
	if err = json.Unmarshal([]byte(data), &movie); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached movie %s: %w", id, err)
	}

	// A failed refresh leaves the hit valid until its current TTL.
	err = c.client.PExpire(ctx, key, min(time.Duration(sliding)*time.Second, remaining)).Err()
	if err != nil {
		c.logger.Warn("failed to refresh cached movie ttl", "movie_id", id, "error", err)
	}

	return &movie, true, nil
}

func parseInt(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected cached value type %T", v)
	}

	return strconv.ParseInt(s, 10, 64)
}
