package domain

import "errors"

var (
	// ErrTimeout is returned when a retailer does not respond within the fetch timeout
	ErrTimeout = errors.New("retailer request timed out")

	// ErrTransport is returned when the retailer is unreachable or replies with a bad status
	ErrTransport = errors.New("retailer transport failure")

	// ErrParse is returned when a retailer response cannot be turned into offers
	ErrParse = errors.New("retailer response could not be parsed")

	// ErrEmptyBatch is returned when batch input contains no usable query
	ErrEmptyBatch = errors.New("no valid query in batch input")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ClassifyError maps an adapter error to its ErrorKind. Unrecognized errors
// classify as unknown rather than being propagated.
func ClassifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrTimeout):
		return ErrorKindTimeout
	case errors.Is(err, ErrTransport):
		return ErrorKindTransport
	case errors.Is(err, ErrParse):
		return ErrorKindParse
	default:
		return ErrorKindUnknown
	}
}
