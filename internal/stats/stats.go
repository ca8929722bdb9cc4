// Package stats reduces the resolved day records to the calendar summary.
package stats

import (
	"math"
	"time"

	"github.com/rkundra/farecalendar/internal/models"
)

// Compute summarizes the successful records. With zero successes every
// field stays absent.
func Compute(records []models.DayPriceRecord, anchor time.Time) models.Stats {
	var stats models.Stats

	var (
		count   int
		sum     float64
		lowest  float64
		highest float64
		best    models.DayPriceRecord
	)

	for _, rec := range records {
		if rec.Status != models.StatusSuccess {
			continue
		}
		count++
		sum += rec.Price
		if count == 1 || rec.Price > highest {
			highest = rec.Price
		}
		// Strict less-than keeps the earliest date on price ties; records
		// arrive in ascending date order.
		if count == 1 || rec.Price < lowest {
			lowest = rec.Price
			best = rec
		}
		if rec.Date.Equal(anchor) {
			price := rec.Price
			stats.SearchDatePrice = &price
		}
	}

	if count == 0 {
		return models.Stats{}
	}

	average := math.Round(sum / float64(count))
	bestDate := best.Date.Format(models.DateLayout)
	bestOffset := best.Offset

	stats.LowestPrice = &lowest
	stats.HighestPrice = &highest
	stats.AveragePrice = &average
	stats.BestDate = &bestDate
	stats.DaysBeforeBestPrice = &bestOffset

	if stats.SearchDatePrice != nil {
		savings := math.Max(0, *stats.SearchDatePrice-lowest)
		stats.PotentialSavings = &savings
	}

	return stats
}
