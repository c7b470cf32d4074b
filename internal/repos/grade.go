package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type GradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grade *types.Grade) (*types.Grade, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Grade, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Grade, error)
	GetByLevelID(ctx context.Context, tx *gorm.DB, levelID uint) ([]types.Grade, error)
	Update(ctx context.Context, tx *gorm.DB, grade *types.Grade) (*types.Grade, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	repoLog := baseLog.With("repo", "GradeRepo")
	return &gradeRepo{db: db, log: repoLog}
}

func (gr *gradeRepo) Create(ctx context.Context, tx *gorm.DB, grade *types.Grade) (*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if err := transaction.WithContext(ctx).Create(grade).Error; err != nil {
		return nil, err
	}
	return grade, nil
}

func (gr *gradeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []types.Grade
	if err := transaction.WithContext(ctx).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *gradeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.Grade
	if err := transaction.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *gradeRepo) GetByLevelID(ctx context.Context, tx *gorm.DB, levelID uint) ([]types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []types.Grade
	if err := transaction.WithContext(ctx).
		Where("level_id = ?", levelID).
		Order("order_index ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *gradeRepo) Update(ctx context.Context, tx *gorm.DB, grade *types.Grade) (*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if err := transaction.WithContext(ctx).Save(grade).Error; err != nil {
		return nil, err
	}
	return grade, nil
}

func (gr *gradeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Grade{}, id).Error
}
