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

// AltexAdapter scrapes Altex.ro, Romania's largest electronics retailer.
// Altex splits prices into integer and decimal spans, so price assembly
// differs from the other adapters.
type AltexAdapter struct {
	client  *Client
	baseURL string
}

// NewAltexAdapter creates an Altex adapter. baseURL is overridable for tests.
func NewAltexAdapter(client *Client, baseURL string) *AltexAdapter {
	if baseURL == "" {
		baseURL = "https://www.altex.ro"
	}
	return &AltexAdapter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Retailer returns the adapter's retailer identifier
func (a *AltexAdapter) Retailer() string { return "altex" }

// Search fetches the Altex search results page for a query and extracts
// offers from its product listings
func (a *AltexAdapter) Search(ctx context.Context, query string) ([]domain.PriceOffer, error) {
	searchURL := fmt.Sprintf("%s/cauta/?q=%s", a.baseURL, url.QueryEscape(query))

	body, err := a.client.GetPage(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	offers := make([]domain.PriceOffer, 0)
	doc.Find("div.Product, div.product-listing").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if offer, ok := a.extractOffer(card); ok {
			offers = append(offers, offer)
		}
		return len(offers) < maxOffersPerPage
	})

	log.Printf("[ALTEX] %d offers for %q", len(offers), query)
	return offers, nil
}

func (a *AltexAdapter) extractOffer(card *goquery.Selection) (domain.PriceOffer, bool) {
	link := card.Find("a.Product-name, a.product-link").First()
	if link.Length() == 0 {
		return domain.PriceOffer{}, false
	}

	productURL, _ := link.Attr("href")
	if productURL != "" && !strings.HasPrefix(productURL, "http") {
		productURL = a.baseURL + productURL
	}

	price, ok := a.assemblePrice(card)
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

	if original, ok := ParsePrice(card.Find("span.Price-old, span.old-price").First().Text()); ok && original > price {
		offer.OriginalPrice = original
		discount := (original - price) / original * 100
		offer.PromotionText = fmt.Sprintf("Reducere %.0f%%", discount)
	}

	stock := strings.ToLower(card.Find("span.Product-availability, span.stock").First().Text())
	if strings.Contains(stock, "indisponibil") {
		offer.Availability = false
	}

	return offer, true
}

// assemblePrice joins the separate integer and decimal price spans
func (a *AltexAdapter) assemblePrice(card *goquery.Selection) (float64, bool) {
	intPart := CleanText(card.Find("span.Price-int, span.price-new").First().Text())
	if intPart == "" {
		return 0, false
	}

	decimalPart := CleanText(card.Find("span.Price-decimal, span.price-cents").First().Text())
	if decimalPart != "" {
		return ParsePrice(intPart + "," + decimalPart)
	}
	return ParsePrice(intPart)
}
