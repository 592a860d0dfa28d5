package domain

import "errors"

var (
	// ErrStoryNotFound signals a missing archive story.
	ErrStoryNotFound = errors.New("story not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidStory signals a story that failed validation.
	ErrInvalidStory = errors.New("invalid story")
	// ErrInvalidFacet signals a facet request over an unknown or non-tag field.
	ErrInvalidFacet = errors.New("invalid facet field")
	// ErrAnalysisFailed signals a text-analysis backend failure. An empty
	// token stream is a valid result; this error is not.
	ErrAnalysisFailed = errors.New("text analysis failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
