package calendar

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rkundra/farecalendar/internal/models"
	"github.com/rkundra/farecalendar/internal/provider"
	"github.com/rkundra/farecalendar/internal/retry"
	"github.com/rkundra/farecalendar/internal/scheduler"
)

type fakeProvider struct {
	mu         sync.Mutex
	configured bool
	prices     map[string]float64 // date -> cheapest price; missing date means no offers
	err        error
	calls      int
	queries    []provider.Query
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) SearchOffers(ctx context.Context, q provider.Query) ([]models.Offer, error) {
	f.mu.Lock()
	f.calls++
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	price, ok := f.prices[q.Date.Format(models.DateLayout)]
	if !ok {
		return nil, nil
	}
	return []models.Offer{
		{ID: "cheap", Price: price},
		{ID: "expensive", Price: price + 900},
	}, nil
}

func testEngine(p provider.Provider) *Engine {
	return New(
		p,
		retry.Policy{MaxAttempts: 3, Delay: time.Millisecond, Retryable: retry.IsTransient},
		scheduler.Config{BatchSize: 8, InterBatchPause: time.Millisecond},
		zap.NewNop(),
	)
}

func futureAnchor() time.Time {
	return time.Now().UTC().AddDate(0, 0, 20)
}

func dateKey(anchor time.Time, offset int) string {
	return anchor.AddDate(0, 0, offset).Format(models.DateLayout)
}

func TestCompute_FullCalendar(t *testing.T) {
	anchor := futureAnchor()
	p := &fakeProvider{
		configured: true,
		prices: map[string]float64{
			dateKey(anchor, -2): 4800,
			dateKey(anchor, 0):  4500,
			dateKey(anchor, 1):  4200,
			dateKey(anchor, 2):  5000,
		},
	}
	eng := testEngine(p)

	req := models.CalendarRequest{Origin: "del", Destination: "bom", DepartDate: anchor.Format(models.DateLayout)}
	result, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 2, AfterDays: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Meta.TotalDays != 5 || len(result.Records) != 5 {
		t.Fatalf("unexpected day counts: meta=%d records=%d", result.Meta.TotalDays, len(result.Records))
	}
	if result.Meta.ValidDays != 4 {
		t.Fatalf("unexpected valid days: %d", result.Meta.ValidDays)
	}
	if result.Meta.Cancelled {
		t.Fatal("unexpected cancelled flag")
	}
	if result.Records[1].Status != models.StatusNoOffers {
		t.Fatalf("day without offers must be no_flights: %s", result.Records[1].Status)
	}
	if result.Records[3].Price != 4200 || result.Records[3].Offer.ID != "cheap" {
		t.Fatalf("cheapest offer not selected: %+v", result.Records[3])
	}

	if result.Stats.LowestPrice == nil || *result.Stats.LowestPrice != 4200 {
		t.Fatalf("unexpected lowest price: %v", result.Stats.LowestPrice)
	}
	if result.Stats.SearchDatePrice == nil || *result.Stats.SearchDatePrice != 4500 {
		t.Fatalf("unexpected anchor price: %v", result.Stats.SearchDatePrice)
	}
	if result.Stats.PotentialSavings == nil || *result.Stats.PotentialSavings != 300 {
		t.Fatalf("unexpected savings: %v", result.Stats.PotentialSavings)
	}

	// Validation normalized the route codes before any fetch.
	if req.Origin != "DEL" || req.Destination != "BOM" {
		t.Fatalf("request not normalized: %+v", req)
	}
	if req.Passengers != 1 {
		t.Fatalf("passenger count not defaulted: %d", req.Passengers)
	}
	for _, q := range p.queries {
		if q.Origin != "DEL" || q.Passengers != 1 {
			t.Fatalf("unexpected provider query: %+v", q)
		}
	}
}

func TestCompute_ValidationErrors(t *testing.T) {
	p := &fakeProvider{configured: true}
	eng := testEngine(p)

	cases := []struct {
		name string
		req  models.CalendarRequest
	}{
		{"missing fields", models.CalendarRequest{Origin: "DEL"}},
		{"same route", models.CalendarRequest{Origin: "DEL", Destination: "DEL", DepartDate: "2025-03-15"}},
		{"bad date", models.CalendarRequest{Origin: "DEL", Destination: "BOM", DepartDate: "15/03/2025"}},
	}
	for _, tc := range cases {
		req := tc.req
		_, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 1, AfterDays: 1})
		var validationErr models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
	if p.calls != 0 {
		t.Fatalf("provider must not be called for invalid requests, calls=%d", p.calls)
	}
}

func TestCompute_MissingCredentialsFailFast(t *testing.T) {
	p := &fakeProvider{configured: false}
	eng := testEngine(p)

	req := models.CalendarRequest{Origin: "DEL", Destination: "BOM", DepartDate: futureAnchor().Format(models.DateLayout)}
	_, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 1, AfterDays: 1})
	if !errors.Is(err, ErrProviderNotConfigured) {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("provider must not be called without credentials, calls=%d", p.calls)
	}
}

func TestCompute_AuthRejectionAbortsWholeCalendar(t *testing.T) {
	p := &fakeProvider{
		configured: true,
		err:        provider.NewStatusError(http.StatusUnauthorized, "Unauthorized"),
	}
	eng := testEngine(p)

	req := models.CalendarRequest{Origin: "DEL", Destination: "BOM", DepartDate: futureAnchor().Format(models.DateLayout)}
	result, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 2, AfterDays: 2})
	if !errors.Is(err, provider.ErrUnauthorized) {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("auth failure must not return a partial result: %+v", result)
	}
}

func TestCompute_TransientFailuresDegradePerDay(t *testing.T) {
	anchor := futureAnchor()
	p := &fakeProvider{
		configured: true,
		err:        provider.NewStatusError(http.StatusServiceUnavailable, "Service Unavailable"),
	}
	eng := testEngine(p)

	req := models.CalendarRequest{Origin: "DEL", Destination: "BOM", DepartDate: anchor.Format(models.DateLayout)}
	result, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 1, AfterDays: 1})
	if err != nil {
		t.Fatalf("persistent day failures must not abort the calendar: %v", err)
	}
	if result.Meta.ValidDays != 0 {
		t.Fatalf("unexpected valid days: %d", result.Meta.ValidDays)
	}
	for _, rec := range result.Records {
		if rec.Status != models.StatusError {
			t.Fatalf("unexpected status: %s", rec.Status)
		}
	}
	if result.Stats != (models.Stats{}) {
		t.Fatalf("stats must be absent with zero successes: %+v", result.Stats)
	}
	// 3 days x 3 attempts each
	if p.calls != 9 {
		t.Fatalf("unexpected provider calls: got %d want 9", p.calls)
	}
}

func TestCompute_PastDatesNeverQueried(t *testing.T) {
	anchor := time.Now().UTC()
	p := &fakeProvider{configured: true, prices: map[string]float64{}}
	eng := testEngine(p)

	req := models.CalendarRequest{Origin: "DEL", Destination: "BOM", DepartDate: anchor.Format(models.DateLayout)}
	result, err := eng.Compute(context.Background(), &req, models.Window{BeforeDays: 5, AfterDays: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 6 {
		t.Fatalf("unexpected record count: %d", len(result.Records))
	}

	cutoff := anchor.AddDate(0, 0, -1).Format(models.DateLayout)
	for _, q := range p.queries {
		if q.Date.Format(models.DateLayout) < cutoff {
			t.Fatalf("provider queried for past date %s", q.Date.Format(models.DateLayout))
		}
	}
	for _, rec := range result.Records[:4] {
		if rec.Status != models.StatusError {
			t.Fatalf("past date must resolve to error: %s %s", rec.Date.Format(models.DateLayout), rec.Status)
		}
	}
}
