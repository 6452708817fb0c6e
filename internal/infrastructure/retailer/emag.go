package retailer

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/priceradar/backend/internal/domain"
)

// maxOffersPerPage bounds how many result cards one search extracts
const maxOffersPerPage = 15

// EmagAdapter scrapes eMAG.ro, Romania's largest online marketplace
type EmagAdapter struct {
	client  *Client
	baseURL string
}

// NewEmagAdapter creates an eMAG adapter. baseURL is overridable for tests.
func NewEmagAdapter(client *Client, baseURL string) *EmagAdapter {
	if baseURL == "" {
		baseURL = "https://www.emag.ro"
	}
	return &EmagAdapter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Retailer returns the adapter's retailer identifier
func (a *EmagAdapter) Retailer() string { return "emag" }

// Search fetches the eMAG search results page for a query and extracts
// offers from its product cards
func (a *EmagAdapter) Search(ctx context.Context, query string) ([]domain.PriceOffer, error) {
	searchURL := fmt.Sprintf("%s/search/%s", a.baseURL, url.PathEscape(query))

	body, err := a.client.GetPage(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	offers := make([]domain.PriceOffer, 0)
	doc.Find("div.card-item, div.card-v2").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if offer, ok := a.extractOffer(card); ok {
			offers = append(offers, offer)
		}
		return len(offers) < maxOffersPerPage
	})

	log.Printf("[EMAG] %d offers for %q", len(offers), query)
	return offers, nil
}

// extractOffer pulls one offer out of a search result card. Cards missing a
// name or a parseable price are skipped, not errors.
func (a *EmagAdapter) extractOffer(card *goquery.Selection) (domain.PriceOffer, bool) {
	title := card.Find("a.card-v2-title, a.product-title").First()
	if title.Length() == 0 {
		return domain.PriceOffer{}, false
	}

	productURL, _ := title.Attr("href")
	if productURL != "" && !strings.HasPrefix(productURL, "http") {
		productURL = a.baseURL + productURL
	}

	price, ok := ParsePrice(card.Find("p.product-new-price").First().Text())
	if !ok {
		return domain.PriceOffer{}, false
	}

	offer := domain.PriceOffer{
		Retailer:     a.Retailer(),
		Price:        price,
		Availability: true,
		URL:          productURL,
	}

	if img, exists := card.Find("img").First().Attr("src"); exists {
		offer.ImageURL = img
	}

	if original, ok := ParsePrice(card.Find("p.product-old-price").First().Text()); ok && original > price {
		offer.OriginalPrice = original
		discount := (original - price) / original * 100
		offer.PromotionText = fmt.Sprintf("Reducere %.0f%%", discount)
	}

	stock := strings.ToLower(card.Find("p.stock-status, p.card-v2-availability").First().Text())
	if strings.Contains(stock, "indisponibil") || strings.Contains(stock, "stoc epuizat") {
		offer.Availability = false
	}

	if delivery := CleanText(card.Find("span.delivery-info, span.shipping-info").First().Text()); delivery != "" {
		offer.DeliveryInfo = delivery
	}

	return offer, true
}
