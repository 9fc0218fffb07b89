package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type SummaryEntry struct {
	SummaryID string
	Day       time.Time
	Amount    int64
	Completed int64
}

type SummaryCacheState struct {
	FetchedAt  time.Time
	EntryCount int64
}

const deleteSummaryEntries = `DELETE FROM summary_entries`

func (q *Queries) DeleteSummaryEntries(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteSummaryEntries)
	return err
}

const insertSummaryEntry = `INSERT INTO summary_entries (summary_id, day, amount, completed)
VALUES (?, ?, ?, ?)
ON CONFLICT (summary_id) DO UPDATE SET
    day = excluded.day,
    amount = excluded.amount,
    completed = excluded.completed`

func (q *Queries) InsertSummaryEntry(ctx context.Context, arg SummaryEntry) error {
	_, err := q.db.ExecContext(ctx, insertSummaryEntry, arg.SummaryID, arg.Day.UTC(), arg.Amount, arg.Completed)
	return err
}

const listSummaryEntries = `SELECT summary_id, day, amount, completed
FROM summary_entries
ORDER BY day, summary_id`

func (q *Queries) ListSummaryEntries(ctx context.Context) ([]SummaryEntry, error) {
	rows, err := q.db.QueryContext(ctx, listSummaryEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SummaryEntry
	for rows.Next() {
		var i SummaryEntry
		if err := rows.Scan(&i.SummaryID, &i.Day, &i.Amount, &i.Completed); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertSummaryCacheState = `INSERT INTO summary_cache_state (id, fetched_at, entry_count)
VALUES (1, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    fetched_at = excluded.fetched_at,
    entry_count = excluded.entry_count`

func (q *Queries) UpsertSummaryCacheState(ctx context.Context, arg SummaryCacheState) error {
	_, err := q.db.ExecContext(ctx, upsertSummaryCacheState, arg.FetchedAt.UTC(), arg.EntryCount)
	return err
}

const getSummaryCacheState = `SELECT fetched_at, entry_count FROM summary_cache_state WHERE id = 1`

func (q *Queries) GetSummaryCacheState(ctx context.Context) (SummaryCacheState, error) {
	row := q.db.QueryRowContext(ctx, getSummaryCacheState)
	var i SummaryCacheState
	err := row.Scan(&i.FetchedAt, &i.EntryCount)
	return i, err
}
