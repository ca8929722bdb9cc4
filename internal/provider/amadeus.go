package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rkundra/farecalendar/internal/models"
)

type AmadeusConfig struct {
	BaseURL           string
	APIKey            string
	APISecret         string
	Currency          string
	MaxResults        int
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// AmadeusClient talks to the Amadeus self-service flight offers API. It
// paces its own requests with a token-bucket limiter and caches the OAuth
// access token until shortly before expiry.
type AmadeusClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	currency   string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger

	token token
}

func NewAmadeusClient(cfg AmadeusConfig, log *zap.Logger) *AmadeusClient {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://test.api.amadeus.com"
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = "INR"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}

	return &AmadeusClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiSecret:  strings.TrimSpace(cfg.APISecret),
		currency:   strings.ToUpper(strings.TrimSpace(cfg.Currency)),
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:        log,
	}
}

func (c *AmadeusClient) Name() string {
	return "amadeus"
}

// Configured reports whether credentials are present. Checked by the
// orchestrator before any network work starts.
func (c *AmadeusClient) Configured() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

func (c *AmadeusClient) SearchOffers(ctx context.Context, q Query) ([]models.Offer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	accessToken, err := c.token.get(ctx, c)
	if err != nil {
		return nil, err
	}

	reqURL := c.searchURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, NewStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode amadeus response: %w", err)
	}

	offers := make([]models.Offer, 0, len(payload.Data))
	for _, d := range payload.Data {
		offer, err := normalizeOffer(d)
		if err != nil {
			c.log.Debug("skipping malformed offer", zap.String("offer_id", d.ID), zap.Error(err))
			continue
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

func (c *AmadeusClient) searchURL(q Query) string {
	u, _ := url.Parse(c.baseURL + "/v2/shopping/flight-offers")
	v := u.Query()
	v.Set("originLocationCode", strings.ToUpper(q.Origin))
	v.Set("destinationLocationCode", strings.ToUpper(q.Destination))
	v.Set("departureDate", q.Date.Format(models.DateLayout))
	v.Set("adults", strconv.Itoa(q.Passengers))
	v.Set("currencyCode", c.currency)
	max := q.MaxResults
	if max <= 0 {
		max = c.maxResults
	}
	v.Set("max", strconv.Itoa(max))
	u.RawQuery = v.Encode()
	return u.String()
}

// Amadeus wire types.

type offersResponse struct {
	Data []offerDTO `json:"data"`
}

type offerDTO struct {
	ID          string         `json:"id"`
	Seats       int            `json:"numberOfBookableSeats"`
	Itineraries []itineraryDTO `json:"itineraries"`
	Price       priceDTO       `json:"price"`
	Airlines    []string       `json:"validatingAirlineCodes"`
}

type itineraryDTO struct {
	Duration string       `json:"duration"`
	Segments []segmentDTO `json:"segments"`
}

type segmentDTO struct {
	Departure pointDTO `json:"departure"`
	Arrival   pointDTO `json:"arrival"`
	Carrier   string   `json:"carrierCode"`
	Number    string   `json:"number"`
}

type pointDTO struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type priceDTO struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

func normalizeOffer(d offerDTO) (models.Offer, error) {
	price, err := strconv.ParseFloat(d.Price.Total, 64)
	if err != nil {
		return models.Offer{}, fmt.Errorf("parse offer price %q: %w", d.Price.Total, err)
	}
	if price <= 0 {
		return models.Offer{}, fmt.Errorf("non-positive offer price %q", d.Price.Total)
	}

	offer := models.Offer{
		ID:        d.ID,
		Price:     price,
		Currency:  d.Price.Currency,
		SeatsLeft: d.Seats,
	}
	if len(d.Airlines) > 0 {
		offer.Carrier = d.Airlines[0]
	}

	if len(d.Itineraries) > 0 {
		itin := d.Itineraries[0]
		offer.Duration = itin.Duration
		offer.Stops = len(itin.Segments) - 1
		if len(itin.Segments) > 0 {
			first := itin.Segments[0]
			last := itin.Segments[len(itin.Segments)-1]
			if offer.Carrier == "" {
				offer.Carrier = first.Carrier
			}
			offer.FlightNumber = first.Carrier + first.Number
			offer.DepartureTime = first.Departure.At
			offer.ArrivalTime = last.Arrival.At
		}
	}

	return offer, nil
}
