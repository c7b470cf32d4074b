package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type UnitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, unit *types.Unit) (*types.Unit, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Unit, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Unit, error)
	GetByGradeID(ctx context.Context, tx *gorm.DB, gradeID uint) ([]types.Unit, error)
	GetFirstByGradeID(ctx context.Context, tx *gorm.DB, gradeID uint) (*types.Unit, error)
	Update(ctx context.Context, tx *gorm.DB, unit *types.Unit) (*types.Unit, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type unitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	repoLog := baseLog.With("repo", "UnitRepo")
	return &unitRepo{db: db, log: repoLog}
}

func (ur *unitRepo) Create(ctx context.Context, tx *gorm.DB, unit *types.Unit) (*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

func (ur *unitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []types.Unit
	if err := transaction.WithContext(ctx).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *unitRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.Unit
	if err := transaction.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *unitRepo) GetByGradeID(ctx context.Context, tx *gorm.DB, gradeID uint) ([]types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []types.Unit
	if err := transaction.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetFirstByGradeID returns the first unit of a grade in display order, or
// nil when the grade has no units yet.
func (ur *unitRepo) GetFirstByGradeID(ctx context.Context, tx *gorm.DB, gradeID uint) (*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.Unit
	err := transaction.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Order("order_index ASC, id ASC").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *unitRepo) Update(ctx context.Context, tx *gorm.DB, unit *types.Unit) (*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Save(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

func (ur *unitRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).Delete(&types.Unit{}, id).Error
}
