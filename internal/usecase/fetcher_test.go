package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/priceradar/backend/internal/domain"
)

// stubAdapter scripts per-call adapter behavior for orchestration tests.
// Responses are consumed in order; the last one repeats.
type stubAdapter struct {
	name      string
	responses []stubResponse
	delay     time.Duration

	mu    sync.Mutex
	calls int
}

type stubResponse struct {
	offers []domain.PriceOffer
	err    error
}

func (s *stubAdapter) Retailer() string { return s.name }

func (s *stubAdapter) Search(ctx context.Context, query string) ([]domain.PriceOffer, error) {
	s.mu.Lock()
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	resp := s.responses[idx]
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.offers, resp.err
}

func (s *stubAdapter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testOffer(retailer, url string, price float64) domain.PriceOffer {
	return domain.PriceOffer{Retailer: retailer, URL: url, Price: price, Availability: true}
}

func newTestFetcher(retries int) *RetailerFetcher {
	return NewRetailerFetcher(NewRateLimiter(8, 0), FetcherConfig{
		Timeout:    200 * time.Millisecond,
		MaxRetries: retries,
	})
}

func TestRetailerFetcher_Success(t *testing.T) {
	adapter := &stubAdapter{
		name: "emag",
		responses: []stubResponse{
			{offers: []domain.PriceOffer{testOffer("emag", "u1", 10)}},
		},
	}

	outcome := newTestFetcher(1).Fetch(context.Background(), adapter, "cafea")

	if !outcome.Success {
		t.Fatalf("Success = false, want true")
	}
	if outcome.Retailer != "emag" {
		t.Errorf("Retailer = %s, want emag", outcome.Retailer)
	}
	if len(outcome.Offers) != 1 {
		t.Errorf("len(Offers) = %d, want 1", len(outcome.Offers))
	}
	if outcome.ErrorKind != "" {
		t.Errorf("ErrorKind = %s, want empty", outcome.ErrorKind)
	}
}

func TestRetailerFetcher_EmptyOffersIsSuccess(t *testing.T) {
	adapter := &stubAdapter{
		name:      "emag",
		responses: []stubResponse{{offers: []domain.PriceOffer{}}},
	}

	outcome := newTestFetcher(1).Fetch(context.Background(), adapter, "cafea")

	if !outcome.Success {
		t.Errorf("Success = false, want true: zero results is a valid outcome")
	}
}

func TestRetailerFetcher_RetriesOnceThenSucceeds(t *testing.T) {
	adapter := &stubAdapter{
		name: "emag",
		responses: []stubResponse{
			{err: fmt.Errorf("%w: connection refused", domain.ErrTransport)},
			{offers: []domain.PriceOffer{testOffer("emag", "u1", 10)}},
		},
	}

	outcome := newTestFetcher(1).Fetch(context.Background(), adapter, "cafea")

	if !outcome.Success {
		t.Fatalf("Success = false, want true after retry")
	}
	if got := adapter.callCount(); got != 2 {
		t.Errorf("adapter calls = %d, want 2", got)
	}
}

func TestRetailerFetcher_FailureAfterRetry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind domain.ErrorKind
	}{
		{"transport", fmt.Errorf("%w: refused", domain.ErrTransport), domain.ErrorKindTransport},
		{"parse", fmt.Errorf("%w: bad html", domain.ErrParse), domain.ErrorKindParse},
		{"timeout", fmt.Errorf("%w: too slow", domain.ErrTimeout), domain.ErrorKindTimeout},
		{"unknown", errors.New("something odd"), domain.ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &stubAdapter{name: "emag", responses: []stubResponse{{err: tt.err}}}

			outcome := newTestFetcher(1).Fetch(context.Background(), adapter, "cafea")

			if outcome.Success {
				t.Fatalf("Success = true, want false")
			}
			if outcome.ErrorKind != tt.wantKind {
				t.Errorf("ErrorKind = %s, want %s", outcome.ErrorKind, tt.wantKind)
			}
			if got := adapter.callCount(); got != 2 {
				t.Errorf("adapter calls = %d, want 2 (one retry)", got)
			}
		})
	}
}

func TestRetailerFetcher_TimeoutClassification(t *testing.T) {
	adapter := &stubAdapter{
		name:      "emag",
		delay:     time.Second,
		responses: []stubResponse{{offers: nil}},
	}

	fetcher := NewRetailerFetcher(NewRateLimiter(8, 0), FetcherConfig{
		Timeout:    20 * time.Millisecond,
		MaxRetries: 0,
	})
	outcome := fetcher.Fetch(context.Background(), adapter, "cafea")

	if outcome.Success {
		t.Fatalf("Success = true, want false")
	}
	if outcome.ErrorKind != domain.ErrorKindTimeout {
		t.Errorf("ErrorKind = %s, want timeout", outcome.ErrorKind)
	}
}

func TestRetailerFetcher_ReleasesPermitOnFailure(t *testing.T) {
	limiter := NewRateLimiter(1, 0)
	fetcher := NewRetailerFetcher(limiter, FetcherConfig{Timeout: 100 * time.Millisecond, MaxRetries: 0})

	failing := &stubAdapter{
		name:      "emag",
		responses: []stubResponse{{err: fmt.Errorf("%w: down", domain.ErrTransport)}},
	}
	fetcher.Fetch(context.Background(), failing, "cafea")

	// The single permit must be free again
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := limiter.Acquire(ctx, "altex"); err != nil {
		t.Errorf("permit not released after failed fetch: %v", err)
	} else {
		limiter.Release()
	}
}

func TestRetailerFetcher_ElapsedIsRecorded(t *testing.T) {
	adapter := &stubAdapter{
		name:      "emag",
		delay:     20 * time.Millisecond,
		responses: []stubResponse{{offers: []domain.PriceOffer{}}},
	}

	outcome := newTestFetcher(0).Fetch(context.Background(), adapter, "cafea")

	if outcome.Elapsed < 20*time.Millisecond {
		t.Errorf("Elapsed = %v, want >= 20ms", outcome.Elapsed)
	}
}
