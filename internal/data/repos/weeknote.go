package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type WeekNoteRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, key types.WeekKey) (*types.WeekNote, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WeekNote, error)
	Upsert(ctx context.Context, tx *gorm.DB, key types.WeekKey, note *string, isLived bool) (*types.WeekNote, error)
}

type weekNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeekNoteRepo(db *gorm.DB, baseLog *logger.Logger) WeekNoteRepo {
	repoLog := baseLog.With("repo", "WeekNoteRepo")
	return &weekNoteRepo{db: db, log: repoLog}
}

// GetByKey returns the note at a coordinate, or nil when none exists.
func (wr *weekNoteRepo) GetByKey(ctx context.Context, tx *gorm.DB, key types.WeekKey) (*types.WeekNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var result types.WeekNote
	err := transaction.WithContext(ctx).
		Where("year = ? AND week_of_year = ?", key.Year, key.WeekOfYear).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *weekNoteRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WeekNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WeekNote
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert writes the note at a coordinate: update in place when the key
// exists, insert otherwise. Applying the same values twice leaves the row
// unchanged.
func (wr *weekNoteRepo) Upsert(ctx context.Context, tx *gorm.DB, key types.WeekKey, note *string, isLived bool) (*types.WeekNote, error) {
	var out *types.WeekNote

	upsert := func(transaction *gorm.DB) error {
		var existing types.WeekNote
		err := transaction.WithContext(ctx).
			Where("year = ? AND week_of_year = ?", key.Year, key.WeekOfYear).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := types.WeekNote{
				ID:         uuid.New(),
				Year:       key.Year,
				WeekOfYear: key.WeekOfYear,
				Note:       note,
				IsLived:    isLived,
			}
			if err := transaction.WithContext(ctx).Create(&created).Error; err != nil {
				return err
			}
			out = &created
			return nil
		}

		if err := transaction.WithContext(ctx).
			Model(&existing).
			Updates(map[string]any{
				"note":     note,
				"is_lived": isLived,
			}).Error; err != nil {
			return err
		}
		existing.Note = note
		existing.IsLived = isLived
		out = &existing
		return nil
	}

	if tx != nil {
		if err := upsert(tx); err != nil {
			return nil, err
		}
		return out, nil
	}

	if err := wr.db.WithContext(ctx).Transaction(upsert); err != nil {
		return nil, err
	}
	return out, nil
}
