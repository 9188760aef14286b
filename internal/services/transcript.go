package services

import "strings"

const voiceNotePrefix = "[Voice Note]: "

// MergeTranscript combines an existing note with a new transcript. A blank
// or missing note yields just the prefixed transcript; otherwise the
// transcript is appended as a new paragraph.
func MergeTranscript(existing *string, transcript string) string {
	transcript = strings.TrimSpace(transcript)

	prior := ""
	if existing != nil {
		prior = strings.TrimSpace(*existing)
	}
	if prior == "" {
		return voiceNotePrefix + transcript
	}
	return prior + "\n\n" + voiceNotePrefix + transcript
}
