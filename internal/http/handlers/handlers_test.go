package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos"
	"github.com/yungbote/lifeweeks-backend/internal/data/repos/testutil"
	"github.com/yungbote/lifeweeks-backend/internal/services"
)

type fakeSpeech struct {
	text string
	err  error
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audio []byte, mimeType string) (*services.SpeechResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.SpeechResult{Text: f.text}, nil
}
func (f *fakeSpeech) Close() error { return nil }

func newTestRouter(t *testing.T, speech services.SpeechProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	profileRepo := repos.NewProfileRepo(gdb, log)
	weekNoteRepo := repos.NewWeekNoteRepo(gdb, log)

	profileHandler := NewProfileHandler(services.NewProfileService(gdb, log, profileRepo))
	calendarHandler := NewCalendarHandler(services.NewCalendarService(gdb, log, profileRepo, weekNoteRepo))
	weekNoteHandler := NewWeekNoteHandler(services.NewNoteService(gdb, log, weekNoteRepo, speech))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/user", profileHandler.SaveProfile)
	api.GET("/user", profileHandler.GetProfile)
	api.GET("/calendar", calendarHandler.GetCalendar)
	api.POST("/week-note", weekNoteHandler.SaveWeekNote)
	api.POST("/week-note/voice", weekNoteHandler.SaveVoiceNote)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type calendarBody struct {
	TotalWeeks  int `json:"total_weeks"`
	LivedWeeks  int `json:"lived_weeks"`
	CurrentWeek int `json:"current_week"`
	Weeks       []struct {
		WeekNumber int    `json:"week_number"`
		Year       int    `json:"year"`
		WeekOfYear int    `json:"week_of_year"`
		IsLived    bool   `json:"is_lived"`
		IsCurrent  bool   `json:"is_current"`
		Note       string `json:"note"`
	} `json:"weeks"`
}

// Exercises the whole API surface against a real database, in the order a
// fresh client would hit it.
func TestAPIFlow(t *testing.T) {
	r := newTestRouter(t, &fakeSpeech{text: "remember the hike"})

	t.Run("calendar without profile is 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/calendar", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status: got=%d want=404 body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "profile_missing") {
			t.Fatalf("body missing error code: %s", rec.Body.String())
		}
	})

	t.Run("profile is null before save", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/user", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "null" {
			t.Fatalf("body: got=%q want=null", got)
		}
	})

	t.Run("save profile", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/user",
			`{"birthdate": "1990-06-15", "life_expectancy": 80}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("save profile rejects bad life expectancy", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/user",
			`{"birthdate": "1990-06-15", "life_expectancy": -3}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "invalid_life_expectancy") {
			t.Fatalf("body missing error code: %s", rec.Body.String())
		}
	})

	t.Run("read profile back", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/user", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d", rec.Code)
		}
		var body struct {
			Birthdate      string `json:"birthdate"`
			LifeExpectancy int    `json:"life_expectancy"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Birthdate != "1990-06-15" || body.LifeExpectancy != 80 {
			t.Fatalf("profile: got=%+v", body)
		}
	})

	t.Run("calendar reflects profile", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/calendar", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
		var cal calendarBody
		if err := json.Unmarshal(rec.Body.Bytes(), &cal); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if cal.TotalWeeks != 80*52 {
			t.Fatalf("total_weeks: got=%d want=%d", cal.TotalWeeks, 80*52)
		}
		if len(cal.Weeks) != cal.TotalWeeks {
			t.Fatalf("len(weeks): got=%d want=%d", len(cal.Weeks), cal.TotalWeeks)
		}
		if cal.CurrentWeek != cal.LivedWeeks+1 {
			t.Fatalf("current_week: got=%d lived=%d", cal.CurrentWeek, cal.LivedWeeks)
		}
	})

	t.Run("week note shows up in calendar", func(t *testing.T) {
		// pick a real coordinate off the grid
		rec := doJSON(t, r, http.MethodGet, "/api/calendar", "")
		var cal calendarBody
		if err := json.Unmarshal(rec.Body.Bytes(), &cal); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		target := cal.Weeks[10]

		rec = doJSON(t, r, http.MethodPost, "/api/week-note",
			`{"year": `+strconv.Itoa(target.Year)+`, "week_number": `+strconv.Itoa(target.WeekOfYear)+`, "note": "first steps", "is_lived": true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("save note status: got=%d body=%s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, r, http.MethodGet, "/api/calendar", "")
		if err := json.Unmarshal(rec.Body.Bytes(), &cal); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		found := false
		for _, w := range cal.Weeks {
			if w.Year == target.Year && w.WeekOfYear == target.WeekOfYear {
				found = true
				if w.Note != "first steps" {
					t.Fatalf("week (%d,%d): note=%q", w.Year, w.WeekOfYear, w.Note)
				}
			}
		}
		if !found {
			t.Fatalf("coordinate (%d,%d) missing from calendar", target.Year, target.WeekOfYear)
		}
	})

	t.Run("week note rejects out of range week", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/week-note",
			`{"year": 2024, "week_number": 54, "note": "nope"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("voice note", func(t *testing.T) {
		rec := doVoice(t, r, "2005", "20", []byte("fake-audio-bytes"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
		var body struct {
			Transcript string `json:"transcript"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Transcript != "remember the hike" {
			t.Fatalf("transcript: got=%q", body.Transcript)
		}
	})

	t.Run("voice note rejects empty file", func(t *testing.T) {
		rec := doVoice(t, r, "2005", "21", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "empty_file") {
			t.Fatalf("body missing error code: %s", rec.Body.String())
		}
	})
}

func TestVoiceNoteTranscriptionFailureIs502(t *testing.T) {
	r := newTestRouter(t, &fakeSpeech{err: context.DeadlineExceeded})

	rec := doVoice(t, r, "2006", "9", []byte("fake-audio-bytes"))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "transcription_failed") {
		t.Fatalf("body missing error code: %s", rec.Body.String())
	}
}

func doVoice(t *testing.T, r *gin.Engine, year, week string, audio []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("year", year); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.WriteField("week_number", week); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := w.CreateFormFile("file", "memo.wav")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(audio); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/week-note/voice", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
