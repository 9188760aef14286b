package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos"
	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type CalendarService interface {
	// GetCalendar builds the life grid as of now. The caller supplies the
	// clock; the generator itself never reads it.
	GetCalendar(dbc dbctx.Context, now time.Time) (*types.CalendarView, error)
}

type calendarService struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	weekNoteRepo repos.WeekNoteRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo, weekNoteRepo repos.WeekNoteRepo) CalendarService {
	serviceLog := log.With("service", "CalendarService")
	return &calendarService{
		db:           db,
		log:          serviceLog,
		profileRepo:  profileRepo,
		weekNoteRepo: weekNoteRepo,
	}
}

func (cs *calendarService) GetCalendar(dbc dbctx.Context, now time.Time) (*types.CalendarView, error) {
	profile, err := cs.profileRepo.Get(dbc.Ctx, dbc.Tx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, types.ErrProfileMissing
	}

	notes, err := cs.weekNoteRepo.GetAll(dbc.Ctx, dbc.Tx)
	if err != nil {
		return nil, fmt.Errorf("load week notes: %w", err)
	}

	return BuildCalendar(profile, IndexNotes(notes), now)
}

// IndexNotes keys notes by coordinate so the generation pass can overlay
// each record with a single map lookup.
func IndexNotes(notes []*types.WeekNote) map[types.WeekKey]*types.WeekNote {
	indexed := make(map[types.WeekKey]*types.WeekNote, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		indexed[n.Key()] = n
	}
	return indexed
}

// BuildCalendar produces the full week grid for a profile with notes
// overlaid by coordinate. Pure: for fixed inputs the output is identical,
// ordered by ascending week number.
//
// Week n (1-based) starts at birthdate + 7*(n-1) days; its coordinate is the
// calendar year and ISO week number of that start date. The horizon uses a
// fixed 52-week year.
func BuildCalendar(profile *types.Profile, notes map[types.WeekKey]*types.WeekNote, today time.Time) (*types.CalendarView, error) {
	if profile == nil {
		return nil, types.ErrProfileMissing
	}
	if profile.LifeExpectancyYears <= 0 {
		return nil, types.ErrInvalidLifeExpectancy
	}

	birth := dateOnly(profile.Birthdate)
	day := dateOnly(today)

	totalWeeks := profile.LifeExpectancyYears * 52
	daysLived := int(day.Sub(birth).Hours() / 24)
	livedWeeks := daysLived / 7
	currentWeek := livedWeeks + 1

	weeks := make([]types.WeekRecord, 0, totalWeeks)
	for n := 1; n <= totalWeeks; n++ {
		anchor := birth.AddDate(0, 0, 7*(n-1))
		_, isoWeek := anchor.ISOWeek()

		key := types.WeekKey{Year: anchor.Year(), WeekOfYear: isoWeek}
		note := ""
		if wn, ok := notes[key]; ok {
			note = wn.NoteText()
		}

		weeks = append(weeks, types.WeekRecord{
			WeekNumber: n,
			Year:       anchor.Year(),
			WeekOfYear: isoWeek,
			Date:       anchor,
			IsLived:    n <= livedWeeks,
			IsCurrent:  n == currentWeek,
			Note:       note,
		})
	}

	return &types.CalendarView{
		TotalWeeks:  totalWeeks,
		LivedWeeks:  livedWeeks,
		CurrentWeek: currentWeek,
		Weeks:       weeks,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
