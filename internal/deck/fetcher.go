package deck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultFetchTimeout bounds a single remote deck request
const DefaultFetchTimeout = 15 * time.Second

// maxDeckSize caps the response body read from the endpoint
const maxDeckSize = 8 << 20

// Fetcher downloads decks from a JSON endpoint. Consecutive failures open a
// circuit breaker so refreshes against a dead endpoint fail fast.
type Fetcher struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
}

// NewFetcher creates a fetcher for endpoint. A nil client uses
// http.DefaultClient; a non-positive timeout uses DefaultFetchTimeout.
func NewFetcher(endpoint string, client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Fetcher{
		endpoint: endpoint,
		client:   client,
		timeout:  timeout,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "deck-endpoint",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Endpoint returns the URL decks are fetched from
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Fetch downloads and parses the deck
func (f *Fetcher) Fetch(ctx context.Context) (*Deck, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Deck), nil
}

func (f *Fetcher) fetch(ctx context.Context) (*Deck, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch deck: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDeckSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read deck response: %w", err)
	}

	d, err := Parse(body)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetched deck", "endpoint", f.endpoint, "categories", len(d.Categories),
		"words", d.Size(), "elapsed", time.Since(start))
	return d, nil
}
