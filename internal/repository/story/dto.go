package story

import (
	"strconv"

	domstory "github.com/reelvault/reelsearch/internal/domain/story"
)

// Hash field names, shared with the FT index schema.
const (
	FieldTitle      = "title"
	FieldSpeaker    = "speaker"
	FieldCollection = "collection"
	FieldYear       = "year"
	FieldDuration   = "duration"
	FieldTranscript = "transcript"
)

func toFields(s *domstory.Story) map[string]string {
	return map[string]string{
		FieldTitle:      s.Title(),
		FieldSpeaker:    s.Speaker(),
		FieldCollection: s.Collection(),
		FieldYear:       strconv.Itoa(s.Year()),
		FieldDuration:   strconv.FormatFloat(s.Duration(), 'g', -1, 64),
		FieldTranscript: s.Transcript(),
	}
}

func fromFields(id string, fields map[string]string) domstory.Story {
	year, _ := strconv.Atoi(fields[FieldYear])
	duration, _ := strconv.ParseFloat(fields[FieldDuration], 64)
	return domstory.Reconstruct(
		id,
		fields[FieldTitle],
		fields[FieldSpeaker],
		fields[FieldCollection],
		year,
		duration,
		fields[FieldTranscript],
	)
}
