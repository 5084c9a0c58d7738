package search

import (
	"errors"
	"fmt"
)

// ErrMalformedPost marks a post that cannot be scored (no slug).
var ErrMalformedPost = errors.New("malformed post")

// ScoringError is a per-post failure. The post is left out of the results
// and the search continues.
type ScoringError struct {
	Slug string
	Err  error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("score post %q: %v", e.Slug, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// SearchFailure is an unexpected failure of a whole search pass.
// Search logs it and returns no results instead of surfacing it.
type SearchFailure struct {
	Query string
	Err   error
}

func (e *SearchFailure) Error() string {
	return fmt.Sprintf("search %q failed: %v", e.Query, e.Err)
}

func (e *SearchFailure) Unwrap() error { return e.Err }
