// Package story holds the archive item aggregate: one recorded interview
// segment with its transcript and catalog metadata.
package story

import (
	"fmt"
	"regexp"

	"github.com/reelvault/reelsearch/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxTranscriptSize is the maximum transcript size in bytes.
const MaxTranscriptSize = 524288 // 512KB

// Story is an immutable archive item.
type Story struct {
	id         string
	title      string
	speaker    string
	collection string
	year       int
	duration   float64 // seconds
	transcript string
}

// New validates and creates a Story.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title and transcript required.
func New(id, title, speaker, collection string, year int, duration float64, transcript string) (Story, error) {
	if id == "" {
		return Story{}, fmt.Errorf("%w: story ID is required", domain.ErrInvalidStory)
	}
	if len(id) > 256 {
		return Story{}, fmt.Errorf("%w: story ID too long (max 256)", domain.ErrInvalidStory)
	}
	if !idRegex.MatchString(id) {
		return Story{}, fmt.Errorf("%w: story ID must be alphanumeric with underscores and hyphens", domain.ErrInvalidStory)
	}
	if title == "" {
		return Story{}, fmt.Errorf("%w: title is required", domain.ErrInvalidStory)
	}
	if transcript == "" {
		return Story{}, fmt.Errorf("%w: transcript is required", domain.ErrInvalidStory)
	}
	if len(transcript) > MaxTranscriptSize {
		return Story{}, fmt.Errorf("%w: transcript too large (max %d bytes)", domain.ErrInvalidStory, MaxTranscriptSize)
	}

	return Story{
		id: id, title: title, speaker: speaker, collection: collection,
		year: year, duration: duration, transcript: transcript,
	}, nil
}

// Reconstruct creates a Story without validation (storage hydration).
func Reconstruct(id, title, speaker, collection string, year int, duration float64, transcript string) Story {
	return Story{
		id: id, title: title, speaker: speaker, collection: collection,
		year: year, duration: duration, transcript: transcript,
	}
}

// ID returns the story identifier.
func (s *Story) ID() string { return s.id }

// Title returns the story title.
func (s *Story) Title() string { return s.title }

// Speaker returns the interviewee name.
func (s *Story) Speaker() string { return s.speaker }

// Collection returns the owning collection tag.
func (s *Story) Collection() string { return s.collection }

// Year returns the recording year.
func (s *Story) Year() int { return s.year }

// Duration returns the segment length in seconds.
func (s *Story) Duration() float64 { return s.duration }

// Transcript returns the full transcript text.
func (s *Story) Transcript() string { return s.transcript }
