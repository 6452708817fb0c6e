package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Batch input limits
const (
	DefaultMaxQueries     = 5
	DefaultMinQueryLength = 2
)

// querySeparatorPattern splits raw batch input into query fragments.
// Users separate products with commas, periods or slashes.
var querySeparatorPattern = regexp.MustCompile(`[,./]`)

// multiSpacePattern collapses runs of whitespace inside a fragment
var multiSpacePattern = regexp.MustCompile(`\s+`)

// ParseBatchInput turns raw user input into the list of normalized queries a
// batch will run, plus the number of fragments dropped by the count cap.
// Fragments are trimmed, whitespace-collapsed, and discarded when shorter
// than minLength. Two equal normalized fragments are the same logical query;
// the first occurrence wins. Excess fragments beyond maxQueries are dropped,
// not erred, and reported through the second return value.
func ParseBatchInput(raw string, maxQueries, minLength int) ([]string, int) {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}

	var queries []string
	seen := make(map[string]bool)
	dropped := 0

	for _, fragment := range querySeparatorPattern.Split(raw, -1) {
		query := normalizeQuery(fragment)
		if utf8.RuneCountInString(query) < minLength {
			continue
		}
		if seen[query] {
			continue
		}
		seen[query] = true

		if len(queries) >= maxQueries {
			dropped++
			continue
		}
		queries = append(queries, query)
	}

	return queries, dropped
}

// normalizeQuery trims a fragment and collapses internal whitespace
func normalizeQuery(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}
