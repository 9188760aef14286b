package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos"
	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type NoteService interface {
	Upsert(ctx context.Context, key types.WeekKey, note *string, isLived bool) (*types.WeekNote, error)

	// AttachTranscript transcribes the audio and appends the transcript to
	// the note at the coordinate. Nothing is written when transcription
	// fails. Returns the stored note and the transcript used.
	AttachTranscript(ctx context.Context, key types.WeekKey, audio []byte, mimeType string) (*types.WeekNote, string, error)
}

type noteService struct {
	db           *gorm.DB
	log          *logger.Logger
	weekNoteRepo repos.WeekNoteRepo
	speech       SpeechProvider
}

func NewNoteService(db *gorm.DB, log *logger.Logger, weekNoteRepo repos.WeekNoteRepo, speech SpeechProvider) NoteService {
	serviceLog := log.With("service", "NoteService")
	return &noteService{
		db:           db,
		log:          serviceLog,
		weekNoteRepo: weekNoteRepo,
		speech:       speech,
	}
}

func (ns *noteService) Upsert(ctx context.Context, key types.WeekKey, note *string, isLived bool) (*types.WeekNote, error) {
	saved, err := ns.weekNoteRepo.Upsert(ctx, nil, key, note, isLived)
	if err != nil {
		return nil, fmt.Errorf("upsert week note: %w", err)
	}
	return saved, nil
}

func (ns *noteService) AttachTranscript(ctx context.Context, key types.WeekKey, audio []byte, mimeType string) (*types.WeekNote, string, error) {
	result, err := ns.speech.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", types.ErrTranscriptionFailed, err)
	}
	if result.Unavailable {
		ns.log.Warn("Speech provider unavailable, using placeholder transcript",
			"reason", result.Reason,
			"year", key.Year,
			"week_of_year", key.WeekOfYear,
		)
	}

	transcript := strings.TrimSpace(result.Text)
	if transcript == "" {
		return nil, "", fmt.Errorf("%w: empty transcript", types.ErrTranscriptionFailed)
	}

	existing, err := ns.weekNoteRepo.GetByKey(ctx, nil, key)
	if err != nil {
		return nil, "", fmt.Errorf("load week note: %w", err)
	}

	var prior *string
	isLived := false
	if existing != nil {
		prior = existing.Note
		isLived = existing.IsLived
	}

	merged := MergeTranscript(prior, transcript)
	saved, err := ns.weekNoteRepo.Upsert(ctx, nil, key, &merged, isLived)
	if err != nil {
		return nil, "", fmt.Errorf("upsert week note: %w", err)
	}
	return saved, transcript, nil
}
