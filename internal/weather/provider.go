package weather

import (
	"context"
	"errors"
)

// Typed fetch failures. The lookup service and HTTP layer branch on these;
// anything else coming out of a provider is treated as a transport error.
var (
	// ErrBadQuery means the provider rejected the query format.
	ErrBadQuery = errors.New("provider rejected query")
	// ErrNotFound means no location matched the query.
	ErrNotFound = errors.New("location not found")
	// ErrUpstream covers provider-side failures, including auth/config
	// problems (bad API key) and 5xx responses.
	ErrUpstream = errors.New("provider upstream error")
	// ErrNetwork covers transport-level failures.
	ErrNetwork = errors.New("provider unreachable")
)

// ForecastProvider abstracts the upstream forecast source. The query is the
// provider-formatted string produced by FormatForProvider.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, query string) (ForecastResponse, error)
}
