package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type ConceptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, concept *types.Concept) (*types.Concept, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Concept, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Concept, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]types.Concept, error)
	GetBySubUnitID(ctx context.Context, tx *gorm.DB, subUnitID uint) ([]types.Concept, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, concept *types.Concept) (*types.Concept, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type conceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	repoLog := baseLog.With("repo", "ConceptRepo")
	return &conceptRepo{db: db, log: repoLog}
}

func (cr *conceptRepo) Create(ctx context.Context, tx *gorm.DB, concept *types.Concept) (*types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(concept).Error; err != nil {
		return nil, err
	}
	return concept, nil
}

func (cr *conceptRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []types.Concept
	if err := transaction.WithContext(ctx).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *conceptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Concept
	if err := transaction.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *conceptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []types.Concept
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *conceptRepo) GetBySubUnitID(ctx context.Context, tx *gorm.DB, subUnitID uint) ([]types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []types.Concept
	if err := transaction.WithContext(ctx).
		Where("sub_unit_id = ?", subUnitID).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *conceptRepo) NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	query := transaction.WithContext(ctx).Model(&types.Concept{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *conceptRepo) Update(ctx context.Context, tx *gorm.DB, concept *types.Concept) (*types.Concept, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Save(concept).Error; err != nil {
		return nil, err
	}
	return concept, nil
}

func (cr *conceptRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Concept{}, id).Error
}
