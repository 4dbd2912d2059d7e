package crawler

import "errors"

var (
	// ErrInvalidParameter is a configuration error found before searching.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSearch is any failure while paging search results or reading the
	// fields of a candidate.
	ErrSearch = errors.New("search failed")

	// ErrEnrichment is a failed profile fetch in repo mode.
	ErrEnrichment = errors.New("enrichment failed")
)
