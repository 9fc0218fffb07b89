package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const summaryRefreshJobName = "summary_cache_refresh"

// SummaryRefresher is implemented by cache.Source.
type SummaryRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RegisterSummaryRefreshJob keeps the summary cache warm on cronExpr and
// once at startup.
func RegisterSummaryRefreshJob(svc *Service, refresher SummaryRefresher, cronExpr string) error {
	if refresher == nil {
		return fmt.Errorf("summary refresh job requires a refresher")
	}

	_, err := svc.AddJob(summaryRefreshJobName, cronExpr, JobOptions{RunImmediately: true}, func(ctx context.Context) error {
		count, err := refresher.Refresh(ctx)
		if err != nil {
			return err
		}
		log.Ctx(ctx).Info().Int("entries", count).Msg("Summary cache refreshed")
		return nil
	})
	return err
}
