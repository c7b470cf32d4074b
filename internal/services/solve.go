package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/questionbank"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

type SubmitAnswerInput struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitAnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Points        int    `json:"points"`
}

// SolveQuestion is what the solving screen renders: no correct answer, no
// explanation, just the prompt and its choices.
type SolveQuestion struct {
	ID           uint                   `json:"id"`
	QuestionText string                 `json:"questionText"`
	QuestionType string                 `json:"questionType"`
	Difficulty   string                 `json:"difficulty"`
	Points       int                    `json:"points"`
	TimeLimit    int                    `json:"timeLimit"`
	Options      []types.QuestionOption `json:"options"`
	Solved       bool                   `json:"solved"`
}

type SolveService interface {
	ListForUser(ctx context.Context, userID uint, filter questionbank.Filter) ([]SolveQuestion, error)
	Submit(ctx context.Context, userID uint, input SubmitAnswerInput) (*SubmitAnswerResult, error)
	History(ctx context.Context, userID uint) ([]types.QuestionAttempt, error)
}

type solveService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	attemptRepo  repos.AttemptRepo
	userRepo     repos.UserRepo
	store        *taxonomy.Store
}

func NewSolveService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo repos.QuestionRepo,
	attemptRepo repos.AttemptRepo,
	userRepo repos.UserRepo,
	store *taxonomy.Store,
) SolveService {
	serviceLog := log.With("service", "SolveService")
	return &solveService{
		db:           db,
		log:          serviceLog,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		userRepo:     userRepo,
		store:        store,
	}
}

// ListForUser returns the solvable questions. Unset filter ranks default to
// the student's own curriculum assignment, so the screen opens on their
// current position.
func (ss *solveService) ListForUser(ctx context.Context, userID uint, filter questionbank.Filter) ([]SolveQuestion, error) {
	user, err := ss.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if filter.LevelID == 0 && user.LevelID != nil {
		filter.LevelID = *user.LevelID
	}
	if filter.GradeID == 0 && filter.LevelID != 0 && user.GradeID != nil {
		filter.GradeID = *user.GradeID
	}

	questions, err := ss.questionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	matched := filter.Apply(ss.store.Snapshot(), questions)

	attempts, err := ss.attemptRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	solved := make(map[uint]bool, len(attempts))
	for _, a := range attempts {
		if a.IsCorrect {
			solved[a.QuestionID] = true
		}
	}

	out := make([]SolveQuestion, 0, len(matched))
	for _, q := range matched {
		options := make([]types.QuestionOption, len(q.Options))
		copy(options, q.Options)
		for i := range options {
			options[i].IsCorrect = false
		}
		out = append(out, SolveQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Difficulty:   q.Difficulty,
			Points:       q.Points,
			TimeLimit:    q.TimeLimit,
			Options:      options,
			Solved:       solved[q.ID],
		})
	}
	return out, nil
}

func (ss *solveService) Submit(ctx context.Context, userID uint, input SubmitAnswerInput) (*SubmitAnswerResult, error) {
	question, err := ss.questionRepo.GetByID(ctx, nil, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("question not found")
	}

	correct := GradeAnswer(question, input.Answer)

	attempt := &types.QuestionAttempt{
		UserID:     userID,
		QuestionID: question.ID,
		Answer:     input.Answer,
		IsCorrect:  correct,
	}
	if _, err := ss.attemptRepo.Create(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	result := &SubmitAnswerResult{
		Correct:       correct,
		CorrectAnswer: CanonicalAnswer(question),
		Explanation:   question.Explanation,
	}
	if correct {
		result.Points = question.Points
	}
	return result, nil
}

func (ss *solveService) History(ctx context.Context, userID uint) ([]types.QuestionAttempt, error) {
	return ss.attemptRepo.GetByUserID(ctx, nil, userID)
}

// GradeAnswer decides correctness. Multiple choice compares the submission
// against the text of the option flagged correct; everything else is a
// trimmed, case-insensitive comparison with the stored answer.
func GradeAnswer(q *types.Question, answer string) bool {
	if q.QuestionType == types.QuestionTypeMultipleChoice {
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return answer == opt.OptionText
			}
		}
		return false
	}
	want := strings.ToLower(strings.TrimSpace(CanonicalAnswer(q)))
	got := strings.ToLower(strings.TrimSpace(answer))
	return want != "" && want == got
}
