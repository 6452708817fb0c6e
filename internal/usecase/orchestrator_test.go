package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/priceradar/backend/internal/domain"
)

func newTestOrchestrator() *QueryOrchestrator {
	return NewQueryOrchestrator(newTestFetcher(0))
}

func TestQueryOrchestrator_CollectsAllOutcomes(t *testing.T) {
	adapters := []domain.RetailerAdapter{
		&stubAdapter{name: "emag", responses: []stubResponse{
			{offers: []domain.PriceOffer{testOffer("emag", "e1", 30)}},
		}},
		&stubAdapter{name: "altex", responses: []stubResponse{
			{offers: []domain.PriceOffer{testOffer("altex", "a1", 25)}},
		}},
	}

	outcomes := newTestOrchestrator().Run(context.Background(), "cafea", adapters)

	if len(outcomes) != 2 {
		t.Fatalf("len(outcomes) = %d, want 2", len(outcomes))
	}
	for _, retailer := range []string{"emag", "altex"} {
		outcome, ok := outcomes[retailer]
		if !ok {
			t.Fatalf("missing outcome for %s", retailer)
		}
		if !outcome.Success {
			t.Errorf("%s Success = false, want true", retailer)
		}
	}
}

func TestQueryOrchestrator_FailureIsolation(t *testing.T) {
	adapters := []domain.RetailerAdapter{
		&stubAdapter{name: "emag", responses: []stubResponse{
			{err: fmt.Errorf("%w: down", domain.ErrTransport)},
		}},
		&stubAdapter{name: "altex", responses: []stubResponse{
			{offers: []domain.PriceOffer{testOffer("altex", "a1", 25)}},
		}},
	}

	outcomes := newTestOrchestrator().Run(context.Background(), "cafea", adapters)

	if outcomes["emag"].Success {
		t.Errorf("emag Success = true, want false")
	}
	if !outcomes["altex"].Success {
		t.Errorf("altex Success = false, want true: one retailer's failure must not affect another")
	}
}

func TestQueryOrchestrator_SlowSuccessNotDroppedByFastFailure(t *testing.T) {
	adapters := []domain.RetailerAdapter{
		&stubAdapter{name: "emag", responses: []stubResponse{
			{err: fmt.Errorf("%w: down", domain.ErrTransport)},
		}},
		&stubAdapter{name: "altex", delay: 50 * time.Millisecond, responses: []stubResponse{
			{offers: []domain.PriceOffer{testOffer("altex", "a1", 25)}},
		}},
	}

	outcomes := newTestOrchestrator().Run(context.Background(), "cafea", adapters)

	altex, ok := outcomes["altex"]
	if !ok || !altex.Success {
		t.Errorf("slow retailer dropped: outcome = %+v", altex)
	}
}

func TestQueryOrchestrator_AllFailedStillCompleteMapping(t *testing.T) {
	adapters := []domain.RetailerAdapter{
		&stubAdapter{name: "emag", responses: []stubResponse{
			{err: fmt.Errorf("%w: down", domain.ErrTransport)},
		}},
		&stubAdapter{name: "altex", responses: []stubResponse{
			{err: fmt.Errorf("%w: bad html", domain.ErrParse)},
		}},
	}

	outcomes := newTestOrchestrator().Run(context.Background(), "cafea", adapters)

	if len(outcomes) != 2 {
		t.Fatalf("len(outcomes) = %d, want 2 even when everything fails", len(outcomes))
	}
	for retailer, outcome := range outcomes {
		if outcome.Success {
			t.Errorf("%s Success = true, want false", retailer)
		}
		if outcome.ErrorKind == "" {
			t.Errorf("%s ErrorKind empty, want a classification", retailer)
		}
	}
}

func TestQueryOrchestrator_NoAdapters(t *testing.T) {
	outcomes := newTestOrchestrator().Run(context.Background(), "cafea", nil)
	if len(outcomes) != 0 {
		t.Errorf("len(outcomes) = %d, want 0", len(outcomes))
	}
}
