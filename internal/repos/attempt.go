package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *types.QuestionAttempt) (*types.QuestionAttempt, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.QuestionAttempt, error)
	GetByUserAndQuestion(ctx context.Context, tx *gorm.DB, userID, questionID uint) ([]types.QuestionAttempt, error)
	CountDistinctUsersByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) (int64, error)
	CountCorrectUsersByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) (int64, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	repoLog := baseLog.With("repo", "AttemptRepo")
	return &attemptRepo{db: db, log: repoLog}
}

func (ar *attemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *types.QuestionAttempt) (*types.QuestionAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

func (ar *attemptRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.QuestionAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []types.QuestionAttempt
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *attemptRepo) GetByUserAndQuestion(ctx context.Context, tx *gorm.DB, userID, questionID uint) ([]types.QuestionAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []types.QuestionAttempt
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CountDistinctUsersByQuestion counts how many users have tried a question,
// each user once regardless of retries.
func (ar *attemptRepo) CountDistinctUsersByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuestionAttempt{}).
		Where("question_id = ?", questionID).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ar *attemptRepo) CountCorrectUsersByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuestionAttempt{}).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
