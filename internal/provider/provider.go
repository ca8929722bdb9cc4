package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rkundra/farecalendar/internal/models"
)

// Query asks the upstream for all offers on a single route and date.
type Query struct {
	Origin      string
	Destination string
	Date        time.Time
	Passengers  int
	MaxResults  int
}

type Provider interface {
	Name() string
	SearchOffers(ctx context.Context, q Query) ([]models.Offer, error)
}

// ErrUnauthorized marks credential rejection by the upstream. Unlike
// transient failures it aborts the whole calendar, not just one day.
var ErrUnauthorized = errors.New("provider rejected credentials")

// StatusError is a non-2xx reply from the upstream.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned %d %s", e.Code, e.Status)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

func NewStatusError(code int, status string) *StatusError {
	return &StatusError{Code: code, Status: status}
}
