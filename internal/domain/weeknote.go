package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeekKey is the calendar coordinate a note is addressed by: the calendar
// year and ISO week number of the grid week's anchor date. The coordinate is
// not unique per grid position in principle — a horizon longer than one full
// revolution through the ISO week calendar can alias two grid weeks to the
// same key, and the overlay then attaches the note to both.
type WeekKey struct {
	Year       int
	WeekOfYear int
}

type WeekNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Year       int       `gorm:"not null;uniqueIndex:idx_week_note_coordinate,priority:1;column:year" json:"year"`
	WeekOfYear int       `gorm:"not null;uniqueIndex:idx_week_note_coordinate,priority:2;column:week_of_year" json:"week_of_year"`
	Note       *string   `gorm:"column:note" json:"note"`
	IsLived    bool      `gorm:"not null;default:false;column:is_lived" json:"is_lived"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WeekNote) TableName() string { return "week_note" }

func (n WeekNote) Key() WeekKey {
	return WeekKey{Year: n.Year, WeekOfYear: n.WeekOfYear}
}

// NoteText returns the note body, empty string when unset.
func (n WeekNote) NoteText() string {
	if n.Note == nil {
		return ""
	}
	return *n.Note
}
