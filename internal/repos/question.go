package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	ReplaceOptions(ctx context.Context, tx *gorm.DB, questionID uint, options []types.QuestionOption) error
	ReplaceConcepts(ctx context.Context, tx *gorm.DB, question *types.Question, concepts []types.Concept) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (qr *questionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []types.Question
	if err := transaction.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.option_order ASC")
		}).
		Preload("Concepts").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var result types.Question
	if err := transaction.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.option_order ASC")
		}).
		Preload("Concepts").
		First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *questionRepo) Update(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if err := transaction.WithContext(ctx).
		Omit("Options", "Concepts").
		Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// ReplaceOptions swaps the full option set of a question. Callers pass the
// desired final state; the old rows are removed first.
func (qr *questionRepo) ReplaceOptions(ctx context.Context, tx *gorm.DB, questionID uint, options []types.QuestionOption) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if err := transaction.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&types.QuestionOption{}).Error; err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}
	for i := range options {
		options[i].QuestionID = questionID
	}
	return transaction.WithContext(ctx).Create(&options).Error
}

func (qr *questionRepo) ReplaceConcepts(ctx context.Context, tx *gorm.DB, question *types.Question, concepts []types.Concept) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	return transaction.WithContext(ctx).
		Model(question).
		Association("Concepts").
		Replace(concepts)
}

func (qr *questionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if err := transaction.WithContext(ctx).
		Where("question_id = ?", id).
		Delete(&types.QuestionOption{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).Delete(&types.Question{}, id).Error
}
