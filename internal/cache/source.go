package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/habitgrid/internal/habitapi"
)

type SummaryFetcher interface {
	GetSummary(ctx context.Context) ([]habitapi.DaySummary, error)
}

type Result struct {
	Summaries []habitapi.DaySummary
	FetchedAt time.Time
	// Stale is set when Summaries came from the cache after a failed fetch.
	Stale bool
}

// Source reads the summary from the API, writing through to the cache.
// A nil cache turns it into a plain API call.
type Source struct {
	api    SummaryFetcher
	cache  *SummaryCache
	maxAge time.Duration
	now    func() time.Time
}

func NewSource(api SummaryFetcher, cache *SummaryCache, maxAge time.Duration) *Source {
	return &Source{api: api, cache: cache, maxAge: maxAge, now: time.Now}
}

// WithClock overrides the time source.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

// Summary fetches live data, falling back to a fresh-enough cached copy
// when the API fails. The API error is returned if no fallback exists.
func (s *Source) Summary(ctx context.Context) (Result, error) {
	logger := log.Ctx(ctx)

	summaries, fetchErr := s.api.GetSummary(ctx)
	if fetchErr == nil {
		now := s.now()
		if s.cache != nil {
			if err := s.cache.Store(ctx, summaries, now); err != nil {
				logger.Error().Err(err).Msg("Failed to cache summary")
			}
		}
		return Result{Summaries: summaries, FetchedAt: now}, nil
	}

	if s.cache == nil {
		return Result{}, fetchErr
	}

	cached, fetchedAt, err := s.cache.Load(ctx, s.maxAge, s.now())
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Error().Err(err).Msg("Failed to read summary cache")
		}
		return Result{}, fetchErr
	}

	logger.Warn().
		Err(fetchErr).
		Time("fetched_at", fetchedAt).
		Int("entries", len(cached)).
		Msg("Serving cached summary")
	return Result{Summaries: cached, FetchedAt: fetchedAt, Stale: true}, nil
}

// Refresh fetches the summary and stores it, for background jobs.
func (s *Source) Refresh(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, fmt.Errorf("summary cache is not configured")
	}
	summaries, err := s.api.GetSummary(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch summary: %w", err)
	}
	if err := s.cache.Store(ctx, summaries, s.now()); err != nil {
		return 0, err
	}
	return len(summaries), nil
}
