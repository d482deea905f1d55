package models

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultFailureMessage is reported when every attempt was rejected for its
// length rather than for an error.
const DefaultFailureMessage = "exhausted retries"

// FetchRequest describes a single random-article fetch
type FetchRequest struct {
	Language   string
	MinLength  int
	MaxLength  int
	MaxRetries int
	// DisableTruncation accepts extracts longer than MaxLength unchanged.
	DisableTruncation bool
}

// Validate checks the request bounds
func (r FetchRequest) Validate() error {
	if r.Language == "" {
		return errors.New("language cannot be empty")
	}
	if _, err := language.ParseBase(r.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", r.Language, err)
	}
	if r.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", r.MaxRetries)
	}
	if r.MinLength < 0 {
		return fmt.Errorf("min_length cannot be negative, got %d", r.MinLength)
	}
	if r.MaxLength <= 0 || r.MaxLength < r.MinLength {
		return fmt.Errorf("max_length (%d) must be positive and not below min_length (%d)", r.MaxLength, r.MinLength)
	}
	return nil
}

// Reason classifies the outcome of one attempt
type Reason string

const (
	ReasonAccepted  Reason = "accepted"
	ReasonTransport Reason = "transport"
	ReasonDecode    Reason = "decode"
	ReasonNotFound  Reason = "not_found"
	ReasonTooShort  Reason = "too_short"
	ReasonCanceled  Reason = "canceled"
)

// IsError reports whether the reason came from an error rather than a length rule
func (r Reason) IsError() bool {
	switch r {
	case ReasonTransport, ReasonDecode, ReasonNotFound, ReasonCanceled:
		return true
	}
	return false
}

// Attempt is the diagnostic record of one iteration of the retry loop
type Attempt struct {
	Number    int
	Title     string
	Reason    Reason
	Err       error
	Length    int
	Truncated bool
	Duration  time.Duration
}

// FetchResult is either a success carrying Text and SourceURL, or a failure
// carrying Message. Attempts is filled in both cases.
type FetchResult struct {
	Success   bool
	Text      string
	SourceURL string
	Title     string
	Language  string
	Message   string
	Attempts  []Attempt
	Duration  time.Duration
}

func NewFetchResult(lang string) *FetchResult {
	return &FetchResult{
		Language: lang,
		Attempts: make([]Attempt, 0),
	}
}

// Accept marks the result successful
func (r *FetchResult) Accept(title, text, sourceURL string) {
	r.Success = true
	r.Title = title
	r.Text = text
	r.SourceURL = sourceURL
	r.Message = ""
}

// Fail marks the result failed with message, or DefaultFailureMessage when empty
func (r *FetchResult) Fail(message string) {
	if message == "" {
		message = DefaultFailureMessage
	}
	r.Success = false
	r.Text = ""
	r.SourceURL = ""
	r.Message = message
}

// Err returns nil on success and an error carrying Message otherwise
func (r *FetchResult) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Message)
}
