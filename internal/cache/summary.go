// Package cache keeps the last good /summary response in SQLite so the grid
// can still render, marked stale, when the habit API is unreachable.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codr1/habitgrid/internal/db"
	"github.com/codr1/habitgrid/internal/habitapi"
)

var ErrCacheMiss = errors.New("summary cache miss")

type SummaryCache struct {
	db *db.DB
}

func NewSummaryCache(database *db.DB) *SummaryCache {
	return &SummaryCache{db: database}
}

// Store replaces the cached summary with summaries.
func (c *SummaryCache) Store(ctx context.Context, summaries []habitapi.DaySummary, fetchedAt time.Time) error {
	return c.db.RunInTx(ctx, func(tx *db.DB) error {
		if err := tx.Queries.DeleteSummaryEntries(ctx); err != nil {
			return fmt.Errorf("clear summary cache: %w", err)
		}
		for _, s := range summaries {
			err := tx.Queries.InsertSummaryEntry(ctx, db.SummaryEntry{
				SummaryID: s.ID,
				Day:       s.Date,
				Amount:    int64(s.Amount),
				Completed: int64(s.Completed),
			})
			if err != nil {
				return fmt.Errorf("cache summary %s: %w", s.ID, err)
			}
		}
		return tx.Queries.UpsertSummaryCacheState(ctx, db.SummaryCacheState{
			FetchedAt:  fetchedAt,
			EntryCount: int64(len(summaries)),
		})
	})
}

// Load returns the cached summary and when it was fetched. It reports
// ErrCacheMiss when nothing is cached or the entry is older than maxAge
// at now.
func (c *SummaryCache) Load(ctx context.Context, maxAge time.Duration, now time.Time) ([]habitapi.DaySummary, time.Time, error) {
	state, err := c.db.Queries.GetSummaryCacheState(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("load summary cache state: %w", err)
	}
	if maxAge > 0 && now.Sub(state.FetchedAt) > maxAge {
		return nil, state.FetchedAt, ErrCacheMiss
	}

	entries, err := c.db.Queries.ListSummaryEntries(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load summary cache: %w", err)
	}

	summaries := make([]habitapi.DaySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, habitapi.DaySummary{
			ID:        e.SummaryID,
			Date:      e.Day,
			Amount:    int(e.Amount),
			Completed: int(e.Completed),
		})
	}
	return summaries, state.FetchedAt, nil
}
