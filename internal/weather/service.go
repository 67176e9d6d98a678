package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when the raw query fails classification; the
// provider is never contacted in that case.
var ErrInvalidInput = errors.New("invalid search query")

// RecentRecorder is the contract for the recent-search state object owned by
// the application; the service records each successful query into it.
type RecentRecorder interface {
	Add(query string)
	List() []string
}

// Service runs one weather lookup end to end: classify the raw query, format
// it for the provider, fetch the forecast, and aggregate it into day
// summaries. It also maintains the single "current result" slot that the
// latest completed lookup overwrites.
type Service struct {
	provider ForecastProvider
	recent   RecentRecorder

	// loc is the calendar basis for day bucketing; nowFn supplies "today".
	loc   *time.Location
	nowFn func() time.Time

	mu         sync.Mutex
	seq        uint64
	current    *LookupResult
	currentSeq uint64
}

// NewService creates a Service bucketing days in the process-local timezone.
func NewService(provider ForecastProvider, recent RecentRecorder) *Service {
	return &Service{
		provider: provider,
		recent:   recent,
		loc:      time.Local,
		nowFn:    time.Now,
	}
}

// Lookup performs a complete search for rawQuery. Invalid input fails closed
// with ErrInvalidInput before any network call; provider failures pass
// through typed (ErrBadQuery, ErrNotFound, ErrUpstream, ErrNetwork); anything
// else is coerced into a generic lookup error. An empty sample list from the
// provider aggregates to an empty day list, not an error.
//
// In-flight lookups are not cancelled when a new one starts. Instead each
// lookup takes a sequence number and only the newest completed one may
// overwrite the current-result slot, so a slow early response can never
// clobber a faster later one. Every lookup still returns its own result to
// its own caller.
func (s *Service) Lookup(ctx context.Context, rawQuery string) (*LookupResult, error) {
	seq := s.nextSeq()
	id := uuid.NewString()

	vr := Classify(rawQuery)
	if vr.Kind == KindInvalid {
		log.Printf("INFO: lookup %s rejected invalid query %q", id, rawQuery)
		return nil, ErrInvalidInput
	}

	query := FormatForProvider(vr.Sanitized, vr.Kind)
	log.Printf("INFO: lookup %s (%s) fetching forecast for %q", id, vr.Kind, query)

	resp, err := s.provider.FetchForecast(ctx, query)
	if err != nil {
		if isTypedFetchError(err) {
			log.Printf("INFO: lookup %s failed: %v", id, err)
			return nil, err
		}
		log.Printf("ERROR: lookup %s unexpected failure: %v", id, err)
		return nil, fmt.Errorf("weather lookup failed: %v", err)
	}

	days := Aggregate(resp.Samples, s.nowFn(), s.loc)

	result := &LookupResult{
		Query:    vr.Sanitized,
		Location: resp.Location,
		Days:     days,
	}

	if s.publish(seq, result) {
		s.recent.Add(vr.Sanitized)
	} else {
		log.Printf("INFO: lookup %s (seq %d) finished stale; result not published", id, seq)
	}

	return result, nil
}

// Current returns the last published lookup result, or nil before the first
// successful search.
func (s *Service) Current() *LookupResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Recent returns the recent-search list.
func (s *Service) Recent() []string {
	return s.recent.List()
}

func (s *Service) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// publish installs result into the current slot unless a newer lookup has
// already published. Reports whether the result was accepted.
func (s *Service) publish(seq uint64, result *LookupResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.currentSeq {
		return false
	}
	s.current = result
	s.currentSeq = seq
	return true
}

func isTypedFetchError(err error) bool {
	return errors.Is(err, ErrBadQuery) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUpstream) ||
		errors.Is(err, ErrNetwork)
}
