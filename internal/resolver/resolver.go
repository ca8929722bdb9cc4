// Package resolver turns one day's fetch outcome into exactly one
// DayPriceRecord. Per-day failures never escape this boundary; the only
// errors it propagates are the request-fatal ones (credential rejection,
// cancellation).
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rkundra/farecalendar/internal/models"
	"github.com/rkundra/farecalendar/internal/provider"
	"github.com/rkundra/farecalendar/internal/retry"
	"github.com/rkundra/farecalendar/internal/window"
)

type Resolver struct {
	provider provider.Provider
	policy   retry.Policy
	log      *zap.Logger
}

func New(p provider.Provider, policy retry.Policy, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		provider: p,
		policy:   policy,
		log:      log,
	}
}

// Resolve fetches offers for one planned day, retrying transient upstream
// failures, and normalizes the outcome into a record.
func (r *Resolver) Resolve(ctx context.Context, req models.CalendarRequest, day window.Day) (models.DayPriceRecord, error) {
	var offers []models.Offer

	err := r.policy.Do(ctx, func() error {
		var fetchErr error
		offers, fetchErr = r.provider.SearchOffers(ctx, provider.Query{
			Origin:      req.Origin,
			Destination: req.Destination,
			Date:        day.Date,
			Passengers:  req.Passengers,
		})
		return fetchErr
	})

	if err != nil {
		if errors.Is(err, provider.ErrUnauthorized) || ctx.Err() != nil {
			return models.DayPriceRecord{}, err
		}
		r.log.Warn("day resolved to error",
			zap.String("date", day.Date.Format(models.DateLayout)),
			zap.Int("offset", day.Offset),
			zap.Error(err),
		)
		return models.NewErrorRecord(day.Date, day.Offset), nil
	}

	if len(offers) == 0 {
		return models.NewNoOffersRecord(day.Date, day.Offset), nil
	}

	cheapest := cheapestOffer(offers)
	return models.NewSuccessRecord(day.Date, day.Offset, cheapest), nil
}

// cheapestOffer picks the minimum-price offer, first one winning ties.
func cheapestOffer(offers []models.Offer) *models.Offer {
	best := 0
	for i := 1; i < len(offers); i++ {
		if offers[i].Price < offers[best].Price {
			best = i
		}
	}
	return &offers[best]
}
