package models

import (
	"fmt"
	"strings"
)

// StateFilter selects which bookings a listing returns. It is a query-time
// predicate evaluated against "now", never a persisted attribute.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts raw caller input into a StateFilter. Matching is
// case-insensitive; empty input defaults to ALL.
func ParseStateFilter(raw string) (StateFilter, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return FilterAll, nil
	}
	switch f := StateFilter(s); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	}
	return "", fmt.Errorf("unsupported state: %s", raw)
}
