package usecase

import (
	"math"

	"github.com/priceradar/backend/internal/domain"
)

// ComputeStats summarizes the price spread across a query's successful,
// available offers: lowest, highest and average price, the saving between
// the extremes, and how many retailers contributed. Returns nil when no
// available offer exists.
func ComputeStats(outcomes map[string]domain.RetailerOutcome) *domain.QueryStats {
	var prices []float64
	retailers := 0
	for _, outcome := range outcomes {
		if !outcome.Success {
			continue
		}
		contributed := false
		for _, offer := range outcome.Offers {
			if !offer.Availability {
				continue
			}
			prices = append(prices, offer.Price)
			contributed = true
		}
		if contributed {
			retailers++
		}
	}

	if len(prices) == 0 {
		return nil
	}

	lowest, highest, sum := prices[0], prices[0], 0.0
	for _, p := range prices {
		if p < lowest {
			lowest = p
		}
		if p > highest {
			highest = p
		}
		sum += p
	}

	savings := 0.0
	if highest > 0 {
		savings = (highest - lowest) / highest * 100
	}

	return &domain.QueryStats{
		LowestPrice:    lowest,
		HighestPrice:   highest,
		AveragePrice:   round2(sum / float64(len(prices))),
		SavingsPercent: round2(savings),
		RetailerCount:  retailers,
		OfferCount:     len(prices),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
