package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type LevelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, level *types.Level) (*types.Level, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Level, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Level, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, level *types.Level) (*types.Level, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type levelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLevelRepo(db *gorm.DB, baseLog *logger.Logger) LevelRepo {
	repoLog := baseLog.With("repo", "LevelRepo")
	return &levelRepo{db: db, log: repoLog}
}

func (lr *levelRepo) Create(ctx context.Context, tx *gorm.DB, level *types.Level) (*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Create(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

func (lr *levelRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []types.Level
	if err := transaction.WithContext(ctx).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *levelRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Level
	if err := transaction.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *levelRepo) NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	query := transaction.WithContext(ctx).Model(&types.Level{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (lr *levelRepo) Update(ctx context.Context, tx *gorm.DB, level *types.Level) (*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Save(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

func (lr *levelRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Level{}, id).Error
}
