// Package calendar is the price-calendar engine: it validates a request,
// plans the date window, drives the batch scheduler to completion and
// summarizes the outcome.
package calendar

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rkundra/farecalendar/internal/models"
	"github.com/rkundra/farecalendar/internal/provider"
	"github.com/rkundra/farecalendar/internal/resolver"
	"github.com/rkundra/farecalendar/internal/retry"
	"github.com/rkundra/farecalendar/internal/scheduler"
	"github.com/rkundra/farecalendar/internal/stats"
	"github.com/rkundra/farecalendar/internal/window"
	"github.com/rkundra/farecalendar/pkg/currency"
)

// ErrProviderNotConfigured aborts a request before any network work when
// upstream credentials are missing.
var ErrProviderNotConfigured = errors.New("offer search provider credentials are not configured")

type Meta struct {
	TotalDays int
	ValidDays int
	Elapsed   time.Duration
	Cancelled bool
	Start     time.Time
	End       time.Time
}

type Result struct {
	Records []models.DayPriceRecord
	Stats   models.Stats
	Meta    Meta
}

type Engine struct {
	provider provider.Provider
	sched    *scheduler.Scheduler
	log      *zap.Logger
	now      func() time.Time
}

func New(p provider.Provider, policy retry.Policy, cfg scheduler.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	res := resolver.New(p, policy, log)
	return &Engine{
		provider: p,
		sched:    scheduler.New(res, cfg, log),
		log:      log,
		now:      time.Now,
	}
}

// Compute produces the full calendar for one request. Per-day failures end
// up as error-status records; only validation, missing configuration and
// upstream credential rejection fail the whole call.
func (e *Engine) Compute(ctx context.Context, req *models.CalendarRequest, win models.Window) (*Result, error) {
	started := e.now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if c, ok := e.provider.(interface{ Configured() bool }); ok && !c.Configured() {
		return nil, ErrProviderNotConfigured
	}

	days, err := window.Plan(req.DepartDate, win, e.now())
	if err != nil {
		return nil, err
	}

	records, cancelled, err := e.sched.Run(ctx, *req, days)
	if err != nil {
		return nil, err
	}

	anchor, _ := req.AnchorDate()
	summary := stats.Compute(records, anchor)

	validDays := 0
	for _, rec := range records {
		if rec.Status == models.StatusSuccess {
			validDays++
		}
	}

	result := &Result{
		Records: records,
		Stats:   summary,
		Meta: Meta{
			TotalDays: len(days),
			ValidDays: validDays,
			Elapsed:   e.now().Sub(started),
			Cancelled: cancelled,
			Start:     days[0].Date,
			End:       days[len(days)-1].Date,
		},
	}

	logger := e.log.With(
		zap.String("route", req.Origin+"-"+req.Destination),
		zap.String("anchor", req.DepartDate),
		zap.Int("total_days", result.Meta.TotalDays),
		zap.Int("valid_days", validDays),
		zap.Duration("elapsed", result.Meta.Elapsed),
		zap.Bool("cancelled", cancelled),
	)
	if summary.LowestPrice != nil {
		logger.Info("calendar computed",
			zap.String("best_fare", currency.FormatINR(*summary.LowestPrice)),
			zap.Stringp("best_date", summary.BestDate),
		)
	} else {
		logger.Info("calendar computed with no priced days")
	}

	return result, nil
}
