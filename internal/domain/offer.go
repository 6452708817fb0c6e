package domain

import "time"

// PriceOffer represents one retailer's quoted price for a product matching a query
type PriceOffer struct {
	Retailer      string  `json:"retailer"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"` // pre-discount price, 0 when absent
	Availability  bool    `json:"availability"`
	URL           string  `json:"url,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	PromotionText string  `json:"promotionText,omitempty"`
	DeliveryInfo  string  `json:"deliveryInfo,omitempty"`
}

// DiscountPercent returns the discount relative to the original price,
// or 0 when there is no original price or it does not exceed the current one.
func (o PriceOffer) DiscountPercent() float64 {
	if o.OriginalPrice <= o.Price {
		return 0
	}
	return (o.OriginalPrice - o.Price) / o.OriginalPrice * 100
}

// ErrorKind classifies why a retailer fetch failed
type ErrorKind string

const (
	ErrorKindTimeout   ErrorKind = "timeout"
	ErrorKindTransport ErrorKind = "transport"
	ErrorKindParse     ErrorKind = "parse"
	ErrorKindUnknown   ErrorKind = "unknown"
)

// RetailerOutcome is the result of querying one retailer: its offers on
// success, or an error classification on failure. Produced exactly once per
// retailer per query and never mutated afterwards.
type RetailerOutcome struct {
	Retailer  string        `json:"retailer"`
	Success   bool          `json:"success"`
	Offers    []PriceOffer  `json:"offers"`
	Elapsed   time.Duration `json:"elapsed"`
	ErrorKind ErrorKind     `json:"errorKind,omitempty"`
}

// QueryResult holds everything produced for a single normalized query:
// the per-retailer outcomes and the ranked top-K offers derived from them.
type QueryResult struct {
	Query      string                     `json:"query"`
	Outcomes   map[string]RetailerOutcome `json:"outcomes"`
	BestOffers []PriceOffer               `json:"bestOffers"`
	Stats      *QueryStats                `json:"stats,omitempty"`
}

// QueryStats summarizes the price spread across a query's successful offers
type QueryStats struct {
	LowestPrice    float64 `json:"lowestPrice"`
	HighestPrice   float64 `json:"highestPrice"`
	AveragePrice   float64 `json:"averagePrice"`
	SavingsPercent float64 `json:"savingsPercent"`
	RetailerCount  int     `json:"retailerCount"`
	OfferCount     int     `json:"offerCount"`
}

// BatchResult is the output of a batch search: one QueryResult per retained
// query, in input order, plus how many fragments were dropped by the cap.
type BatchResult struct {
	Results []QueryResult `json:"results"`
	Dropped int           `json:"dropped"`
}
