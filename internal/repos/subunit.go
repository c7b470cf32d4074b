package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type SubUnitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subUnit *types.SubUnit) (*types.SubUnit, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.SubUnit, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.SubUnit, error)
	GetByUnitID(ctx context.Context, tx *gorm.DB, unitID uint) ([]types.SubUnit, error)
	GetFirstByUnitID(ctx context.Context, tx *gorm.DB, unitID uint) (*types.SubUnit, error)
	Update(ctx context.Context, tx *gorm.DB, subUnit *types.SubUnit) (*types.SubUnit, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type subUnitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubUnitRepo(db *gorm.DB, baseLog *logger.Logger) SubUnitRepo {
	repoLog := baseLog.With("repo", "SubUnitRepo")
	return &subUnitRepo{db: db, log: repoLog}
}

func (sr *subUnitRepo) Create(ctx context.Context, tx *gorm.DB, subUnit *types.SubUnit) (*types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(subUnit).Error; err != nil {
		return nil, err
	}
	return subUnit, nil
}

func (sr *subUnitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []types.SubUnit
	if err := transaction.WithContext(ctx).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subUnitRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SubUnit
	if err := transaction.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *subUnitRepo) GetByUnitID(ctx context.Context, tx *gorm.DB, unitID uint) ([]types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []types.SubUnit
	if err := transaction.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subUnitRepo) GetFirstByUnitID(ctx context.Context, tx *gorm.DB, unitID uint) (*types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SubUnit
	err := transaction.WithContext(ctx).
		Where("unit_id = ?", unitID).
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

func (sr *subUnitRepo) Update(ctx context.Context, tx *gorm.DB, subUnit *types.SubUnit) (*types.SubUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Save(subUnit).Error; err != nil {
		return nil, err
	}
	return subUnit, nil
}

func (sr *subUnitRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).Delete(&types.SubUnit{}, id).Error
}
