package domain

import "errors"

var (
	// ErrProfileMissing: no profile has been saved yet; the calendar cannot
	// be generated.
	ErrProfileMissing = errors.New("profile not set")

	// ErrInvalidLifeExpectancy: life expectancy must be a positive number of
	// years. Rejected at save time.
	ErrInvalidLifeExpectancy = errors.New("life expectancy must be positive")

	// ErrTranscriptionFailed: the speech-to-text provider errored; no note
	// change is persisted.
	ErrTranscriptionFailed = errors.New("transcription failed")
)
