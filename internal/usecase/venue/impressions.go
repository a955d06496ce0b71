package venue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

const (
	impressionAttempts = 3
	impressionTimeout  = 5 * time.Second
)

// ImpressionRecorder bumps impression counters off the request path.
type ImpressionRecorder struct {
	repo    repository.VenueRepository
	log     *slog.Logger
	backoff time.Duration
	wg      sync.WaitGroup
}

func NewImpressionRecorder(repo repository.VenueRepository, log *slog.Logger) *ImpressionRecorder {
	return &ImpressionRecorder{
		repo:    repo,
		log:     log,
		backoff: 200 * time.Millisecond,
	}
}

// Record schedules one impression for each venue. It never blocks the caller
// and outlives the request context.
func (r *ImpressionRecorder) Record(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		var err error
		for attempt := 1; attempt <= impressionAttempts; attempt++ {
			err = r.increment(ctx, ids)
			if err == nil {
				return
			}
			r.log.Warn("impression increment failed", "attempt", attempt, "venue_ids", ids, "error", err)
			if attempt < impressionAttempts {
				time.Sleep(r.backoff * time.Duration(attempt))
			}
		}
		r.log.Error("dropping venue impressions", "venue_ids", ids, "error", err)
	}()
}

func (r *ImpressionRecorder) increment(ctx context.Context, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, impressionTimeout)
	defer cancel()
	return r.repo.IncrementCounter(ctx, domain.VenueImpressions, ids...)
}

// Wait blocks until every scheduled increment has finished.
func (r *ImpressionRecorder) Wait() {
	r.wg.Wait()
}
