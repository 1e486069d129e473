// Package trending fetches the GitHub trending page and turns its markup
// into typed entries.
package trending

import (
	"errors"
	"fmt"
	"strings"
)

// TimeRange selects which window the star counts of the trending page cover.
type TimeRange string

const (
	Daily   TimeRange = "daily"
	Weekly  TimeRange = "weekly"
	Monthly TimeRange = "monthly"
)

// TimeRanges lists every accepted time range in display order.
var TimeRanges = []TimeRange{Daily, Weekly, Monthly}

var (
	// ErrInvalidTimeRange is returned for selectors outside daily/weekly/monthly.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrFetch marks a transport failure: network, timeout or non-2xx status.
	ErrFetch = errors.New("fetch trending page")

	// ErrNoEntries marks markup that fetched fine but held no entry blocks.
	ErrNoEntries = errors.New("no entry blocks found")
)

// Messages carried in the result envelope.
const (
	FetchFailedMessage = "Failed to fetch GitHub Trending page"
	NoEntriesMessage   = "No repositories found, GitHub page structure may have changed"
)

// ParseTimeRange parses a selector case-insensitively.
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
}

// Valid reports whether r is one of the accepted ranges.
func (r TimeRange) Valid() bool {
	switch r {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Label returns the human-readable header label for r.
func (r TimeRange) Label() string {
	switch r {
	case Daily:
		return "Daily (今日)"
	case Weekly:
		return "Weekly (本周)"
	case Monthly:
		return "Monthly (本月)"
	}
	return string(r)
}

func (r TimeRange) String() string {
	return string(r)
}

// ValidTimeRanges returns the accepted selectors joined for messages.
func ValidTimeRanges() string {
	names := make([]string, len(TimeRanges))
	for i, r := range TimeRanges {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Entry is one repository listed on the trending page.
type Entry struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	TotalStars  string `json:"totalStars"`
	PeriodStars string `json:"periodStars"`
	Language    string `json:"language"`
}

// Failure classifies why a Result is unsuccessful.
type Failure int

const (
	FailureNone Failure = iota
	FailureTransport
	FailureStructuralDrift
)

func (f Failure) String() string {
	switch f {
	case FailureTransport:
		return "transport_failure"
	case FailureStructuralDrift:
		return "structural_drift"
	}
	return "success"
}

// Result is the envelope handed to every presenter.
type Result struct {
	Success bool     `json:"success"`
	Entries []*Entry `json:"entries"`
	Error   *string  `json:"error"`

	// Failure and Cause are kept out of the wire format.
	Failure Failure `json:"-"`
	Cause   error   `json:"-"`
}

// Succeeded builds a successful envelope. A nil slice becomes an empty one.
func Succeeded(entries []*Entry) Result {
	if entries == nil {
		entries = []*Entry{}
	}
	return Result{Success: true, Entries: entries}
}

// Failed builds an unsuccessful envelope carrying msg.
func Failed(kind Failure, msg string, cause error) Result {
	return Result{
		Success: false,
		Entries: []*Entry{},
		Error:   &msg,
		Failure: kind,
		Cause:   cause,
	}
}

// ErrorMessage returns the envelope error text, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// Err converts a failed envelope into an error wrapping ErrFetch or
// ErrNoEntries. It returns nil for a successful envelope.
func (r Result) Err() error {
	switch r.Failure {
	case FailureTransport:
		if r.Cause != nil {
			return fmt.Errorf("%s: %w", r.ErrorMessage(), r.Cause)
		}
		return fmt.Errorf("%s: %w", r.ErrorMessage(), ErrFetch)
	case FailureStructuralDrift:
		return fmt.Errorf("%s: %w", r.ErrorMessage(), ErrNoEntries)
	}
	if !r.Success {
		return errors.New(r.ErrorMessage())
	}
	return nil
}
