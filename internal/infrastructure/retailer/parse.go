package retailer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyWordsRegex = regexp.MustCompile(`(?i)(lei|ron|eur|€)`)
	numberRegex        = regexp.MustCompile(`\d+\.?\d*`)
)

// ParsePrice parses a price from Romanian text format.
//
// Examples:
//
//	"123,45 lei"   -> 123.45
//	"1.234,56 RON" -> 1234.56
//	"123 lei"      -> 123.0
//
// Returns 0 and false when no number can be extracted.
func ParsePrice(text string) (float64, bool) {
	text = currencyWordsRegex.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	// Romanian number format uses "." for thousands and "," for decimals
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")

	match := numberRegex.FindString(text)
	if match == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// CleanText collapses whitespace and trims the result
func CleanText(text string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
