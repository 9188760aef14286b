package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos"
	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type ProfileService interface {
	Get(ctx context.Context) (*types.Profile, error)
	Save(ctx context.Context, birthdate time.Time, lifeExpectancyYears int) (*types.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:          db,
		log:         serviceLog,
		profileRepo: profileRepo,
	}
}

// Get returns the current profile, nil when none is saved.
func (ps *profileService) Get(ctx context.Context) (*types.Profile, error) {
	profile, err := ps.profileRepo.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

// Save replaces the stored profile. Invalid life expectancies are rejected
// here so generation never sees one.
func (ps *profileService) Save(ctx context.Context, birthdate time.Time, lifeExpectancyYears int) (*types.Profile, error) {
	if lifeExpectancyYears <= 0 {
		return nil, types.ErrInvalidLifeExpectancy
	}

	profile := &types.Profile{
		Birthdate:           birthdate,
		LifeExpectancyYears: lifeExpectancyYears,
	}
	saved, err := ps.profileRepo.Replace(ctx, nil, profile)
	if err != nil {
		return nil, fmt.Errorf("replace profile: %w", err)
	}

	ps.log.Info("Profile saved",
		"birthdate", birthdate.Format("2006-01-02"),
		"life_expectancy", lifeExpectancyYears,
	)
	return saved, nil
}
