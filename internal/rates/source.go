// Package rates supplies exchange-rate snapshots to the settlement engine.
//
// The calculator never fetches anything itself: it is handed a *models.RateTable (or nil)
// obtained from a Supplier, which owns every network, caching and fallback concern.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

// DefaultURL is the exchangerate-api v4 endpoint; the base currency is appended as a path element.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest"

// ErrNoRates is returned when the provider answers without a rate table.
var ErrNoRates = errors.New("response contains no rates")

// Source fetches a fresh rate table for a base currency.
type Source interface {
	Fetch(ctx context.Context, base string) (*models.RateTable, error)
}

// HTTPSource fetches rate tables from an exchangerate-api compatible endpoint.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewHTTPSource returns a source querying baseURL with the given per-request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// response is the subset of the provider payload we use.
//
//	{"base": "USD", "date": "2026-10-16", "time_last_updated": 1760572801, "rates": {"USD": 1, "EUR": 0.92}}
type response struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Fetch performs GET {baseURL}/{base} and decodes the table.
// A missing base or date in the payload defaults to the requested base and today.
func (s *HTTPSource) Fetch(ctx context.Context, base string) (*models.RateTable, error) {
	addr := fmt.Sprintf("%s/%s", s.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %s%s: %s", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, ErrNoRates
	}

	now := s.now()
	table := &models.RateTable{
		Base:      payload.Base,
		Date:      payload.Date,
		Rates:     payload.Rates,
		FetchedAt: now.Unix(),
	}
	if table.Base == "" {
		table.Base = base
	}
	if table.Date == "" {
		table.Date = now.Format("2006-01-02")
	}
	return table, nil
}
