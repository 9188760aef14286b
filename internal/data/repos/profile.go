package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type ProfileRepo interface {
	Get(ctx context.Context, tx *gorm.DB) (*types.Profile, error)
	Replace(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

// Get returns the stored profile, or nil when none has been saved.
func (pr *profileRepo) Get(ctx context.Context, tx *gorm.DB) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Profile
	err := transaction.WithContext(ctx).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Replace swaps the single stored profile for the given one atomically.
// Last write wins; there is never more than one row.
func (pr *profileRepo) Replace(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	replace := func(transaction *gorm.DB) error {
		if err := transaction.WithContext(ctx).
			Where("1 = 1").
			Delete(&types.Profile{}).Error; err != nil {
			return err
		}
		return transaction.WithContext(ctx).Create(profile).Error
	}

	if tx != nil {
		if err := replace(tx); err != nil {
			return nil, err
		}
		return profile, nil
	}

	if err := pr.db.WithContext(ctx).Transaction(replace); err != nil {
		return nil, err
	}
	return profile, nil
}
