package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/http/response"
	"github.com/yungbote/lifeweeks-backend/internal/services"
)

type WeekNoteHandler struct {
	noteService services.NoteService
}

func NewWeekNoteHandler(noteService services.NoteService) *WeekNoteHandler {
	return &WeekNoteHandler{noteService: noteService}
}

// POST /api/week-note
// body: { "year": 2024, "week_number": 5, "note": "...", "is_lived": true }
// week_number on the wire is the ISO week-of-year coordinate, a name kept
// for client compatibility.
func (wh *WeekNoteHandler) SaveWeekNote(c *gin.Context) {
	var req struct {
		Year       int     `json:"year" binding:"required"`
		WeekNumber int     `json:"week_number" binding:"required"`
		Note       *string `json:"note"`
		IsLived    bool    `json:"is_lived"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.WeekNumber < 1 || req.WeekNumber > 53 {
		response.RespondError(c, http.StatusBadRequest, "invalid_week_number",
			errors.New("week_number must be between 1 and 53"))
		return
	}

	key := types.WeekKey{Year: req.Year, WeekOfYear: req.WeekNumber}
	if _, err := wh.noteService.Upsert(c.Request.Context(), key, req.Note, req.IsLived); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "persistence_error", err)
		return
	}

	response.RespondOK(c, gin.H{"message": "Week note saved successfully"})
}

// POST /api/week-note/voice (multipart/form-data)
// fields: "year", "week_number", file field "file"
func (wh *WeekNoteHandler) SaveVoiceNote(c *gin.Context) {
	// short voice memos only
	const maxBytes = 10 << 20

	year, err := formInt(c, "year")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_year", err)
		return
	}
	week, err := formInt(c, "week_number")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_week_number", err)
		return
	}
	if week < 1 || week > 53 {
		response.RespondError(c, http.StatusBadRequest, "invalid_week_number",
			errors.New("week_number must be between 1 and 53"))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}
	if len(raw) > maxBytes {
		response.RespondError(c, http.StatusBadRequest, "file_too_large",
			errors.New("audio file exceeds 10MB"))
		return
	}
	if len(raw) == 0 {
		response.RespondError(c, http.StatusBadRequest, "empty_file",
			errors.New("audio file is empty"))
		return
	}

	key := types.WeekKey{Year: year, WeekOfYear: week}
	note, transcript, err := wh.noteService.AttachTranscript(
		c.Request.Context(), key, raw, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, types.ErrTranscriptionFailed) {
			response.RespondError(c, http.StatusBadGateway, "transcription_failed", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "persistence_error", err)
		return
	}

	response.RespondOK(c, gin.H{
		"note":       note,
		"transcript": transcript,
	})
}

func formInt(c *gin.Context, field string) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, errors.New(field + " is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(field + " must be an integer")
	}
	return v, nil
}
