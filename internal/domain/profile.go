package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLifeExpectancyYears = 80

// Profile is the single stored profile. At most one row exists at a time;
// saving replaces the previous row wholesale.
type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Birthdate           time.Time `gorm:"not null;column:birthdate" json:"birthdate"`
	LifeExpectancyYears int       `gorm:"not null;default:80;column:life_expectancy" json:"life_expectancy"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "user_profile" }
