// Package scheduler drives the per-day fetch+resolve work in fixed-size
// batches: full concurrency inside a batch, a pause between batches. The
// pause is the coarse backpressure that keeps the upstream rate limit
// honest while a batch still parallelizes for throughput.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rkundra/farecalendar/internal/models"
	"github.com/rkundra/farecalendar/internal/window"
)

type Config struct {
	BatchSize       int
	InterBatchPause time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatchSize:       8,
		InterBatchPause: 500 * time.Millisecond,
	}
}

// DayResolver resolves one planned day to a record. A non-nil error is
// request-fatal; per-day failures arrive as error-status records.
type DayResolver interface {
	Resolve(ctx context.Context, req models.CalendarRequest, day window.Day) (models.DayPriceRecord, error)
}

type Scheduler struct {
	resolver DayResolver
	config   Config
	log      *zap.Logger
}

func New(resolver DayResolver, config Config, log *zap.Logger) *Scheduler {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		resolver: resolver,
		config:   config,
		log:      log,
	}
}

// Run resolves every planned day, returning records in planned order. The
// returned bool reports cancellation: records resolved by fully completed
// batches are still returned, and no further batches are started.
func (s *Scheduler) Run(ctx context.Context, req models.CalendarRequest, days []window.Day) ([]models.DayPriceRecord, bool, error) {
	records := make([]models.DayPriceRecord, 0, len(days))

	for start := 0; start < len(days); start += s.config.BatchSize {
		if ctx.Err() != nil {
			return records, true, nil
		}

		end := start + s.config.BatchSize
		if end > len(days) {
			end = len(days)
		}
		batch := days[start:end]

		// Index-addressed slots keep planned order regardless of which
		// goroutine finishes first.
		slots := make([]models.DayPriceRecord, len(batch))
		errs := make([]error, len(batch))
		var wg sync.WaitGroup

		for i, day := range batch {
			if day.Past {
				slots[i] = models.NewErrorRecord(day.Date, day.Offset)
				continue
			}

			wg.Add(1)
			go func(i int, day window.Day) {
				defer wg.Done()
				slots[i], errs[i] = s.resolver.Resolve(ctx, req, day)
			}(i, day)
		}
		wg.Wait()

		cancelled := false
		for _, err := range errs {
			if err == nil {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				cancelled = true
				continue
			}
			return nil, false, err
		}
		if cancelled || ctx.Err() != nil {
			return records, true, nil
		}

		records = append(records, slots...)
		s.log.Debug("batch resolved",
			zap.Int("batch_start", start),
			zap.Int("batch_size", len(batch)),
		)

		if end < len(days) {
			select {
			case <-time.After(s.config.InterBatchPause):
			case <-ctx.Done():
				return records, true, nil
			}
		}
	}

	return records, false, nil
}
