package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/questionbank"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

type QuestionInput struct {
	LevelID       uint     `json:"levelId" binding:"required"`
	SubUnitID     *uint    `json:"subUnitId"`
	Difficulty    string   `json:"difficulty"`
	EvalDomain    string   `json:"evalDomain"`
	QuestionText  string   `json:"questionText" binding:"required"`
	QuestionType  string   `json:"questionType" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	TimeLimit     int      `json:"timeLimit"`
	Options       []string `json:"options"`
	ConceptIDs    []uint   `json:"conceptIds"`

	ReferenceImage    *multipart.FileHeader `json:"-"`
	ReferenceDocument *multipart.FileHeader `json:"-"`
}

// QuestionDTO is a question ready for display: taxonomy labels resolved, the
// canonical correct answer surfaced, and solve statistics attached.
type QuestionDTO struct {
	types.Question
	LevelName    string  `json:"levelName"`
	GradeName    string  `json:"gradeName"`
	UnitName     string  `json:"unitName"`
	SubUnitName  string  `json:"subUnitName"`
	AttemptCount int64   `json:"attemptCount"`
	CorrectCount int64   `json:"correctCount"`
	CorrectRate  float64 `json:"correctRate"`
}

type QuestionService interface {
	Create(ctx context.Context, input QuestionInput, createdBy uint) (*QuestionDTO, error)
	List(ctx context.Context, filter questionbank.Filter) ([]QuestionDTO, error)
	GetByID(ctx context.Context, id uint) (*QuestionDTO, error)
	Update(ctx context.Context, id uint, input QuestionInput) (*QuestionDTO, error)
	Delete(ctx context.Context, id uint) error
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	conceptRepo  repos.ConceptRepo
	attemptRepo  repos.AttemptRepo
	store        *taxonomy.Store
	files        FileStorageService
}

func NewQuestionService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo repos.QuestionRepo,
	conceptRepo repos.ConceptRepo,
	attemptRepo repos.AttemptRepo,
	store *taxonomy.Store,
	files FileStorageService,
) QuestionService {
	serviceLog := log.With("service", "QuestionService")
	return &questionService{
		db:           db,
		log:          serviceLog,
		questionRepo: questionRepo,
		conceptRepo:  conceptRepo,
		attemptRepo:  attemptRepo,
		store:        store,
		files:        files,
	}
}

func (qs *questionService) Create(ctx context.Context, input QuestionInput, createdBy uint) (*QuestionDTO, error) {
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}

	concepts, err := qs.resolveConcepts(ctx, input.ConceptIDs)
	if err != nil {
		return nil, err
	}

	question := &types.Question{
		LevelID:       input.LevelID,
		SubUnitID:     normalizeRef(input.SubUnitID),
		Difficulty:    input.Difficulty,
		EvalDomain:    strings.TrimSpace(input.EvalDomain),
		QuestionText:  input.QuestionText,
		QuestionType:  input.QuestionType,
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
		Points:        input.Points,
		TimeLimit:     input.TimeLimit,
		Options:       BuildOptions(input.QuestionType, input.Options, input.CorrectAnswer),
		Concepts:      concepts,
	}
	if question.Points <= 0 {
		question.Points = 10
	}
	if createdBy != 0 {
		question.CreatedByID = &createdBy
	}

	if input.ReferenceImage != nil {
		path, err := qs.files.SaveUpload(input.ReferenceImage, "questions/images")
		if err != nil {
			return nil, fmt.Errorf("failed to store reference image: %w", err)
		}
		question.ReferenceImage = path
	}
	if input.ReferenceDocument != nil {
		path, err := qs.files.SaveUpload(input.ReferenceDocument, "questions/documents")
		if err != nil {
			return nil, fmt.Errorf("failed to store reference document: %w", err)
		}
		question.ReferenceDocument = path
	}

	if _, err := qs.questionRepo.Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	qs.log.Info("Question created", "question_id", question.ID, "type", question.QuestionType)
	return qs.toDTO(ctx, question), nil
}

func (qs *questionService) List(ctx context.Context, filter questionbank.Filter) ([]QuestionDTO, error) {
	questions, err := qs.questionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sn := qs.store.Snapshot()
	matched := filter.Apply(sn, questions)

	out := make([]QuestionDTO, 0, len(matched))
	for i := range matched {
		out = append(out, *qs.toDTO(ctx, &matched[i]))
	}
	return out, nil
}

func (qs *questionService) GetByID(ctx context.Context, id uint) (*QuestionDTO, error) {
	question, err := qs.questionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("question not found")
	}
	return qs.toDTO(ctx, question), nil
}

func (qs *questionService) Update(ctx context.Context, id uint, input QuestionInput) (*QuestionDTO, error) {
	question, err := qs.questionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("question not found")
	}
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}

	concepts, err := qs.resolveConcepts(ctx, input.ConceptIDs)
	if err != nil {
		return nil, err
	}

	question.LevelID = input.LevelID
	question.SubUnitID = normalizeRef(input.SubUnitID)
	question.Difficulty = input.Difficulty
	question.EvalDomain = strings.TrimSpace(input.EvalDomain)
	question.QuestionText = input.QuestionText
	question.QuestionType = input.QuestionType
	question.CorrectAnswer = input.CorrectAnswer
	question.Explanation = input.Explanation
	question.TimeLimit = input.TimeLimit
	if input.Points > 0 {
		question.Points = input.Points
	}

	if input.ReferenceImage != nil {
		path, err := qs.files.SaveUpload(input.ReferenceImage, "questions/images")
		if err != nil {
			return nil, fmt.Errorf("failed to store reference image: %w", err)
		}
		question.ReferenceImage = path
	}
	if input.ReferenceDocument != nil {
		path, err := qs.files.SaveUpload(input.ReferenceDocument, "questions/documents")
		if err != nil {
			return nil, fmt.Errorf("failed to store reference document: %w", err)
		}
		question.ReferenceDocument = path
	}

	options := BuildOptions(input.QuestionType, input.Options, input.CorrectAnswer)

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := qs.questionRepo.Update(ctx, tx, question); err != nil {
			return fmt.Errorf("failed to update question: %w", err)
		}
		if err := qs.questionRepo.ReplaceOptions(ctx, tx, question.ID, options); err != nil {
			return fmt.Errorf("failed to replace options: %w", err)
		}
		if err := qs.questionRepo.ReplaceConcepts(ctx, tx, question, concepts); err != nil {
			return fmt.Errorf("failed to replace concepts: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return qs.GetByID(ctx, id)
}

func (qs *questionService) Delete(ctx context.Context, id uint) error {
	question, err := qs.questionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("question not found")
	}

	if err := qs.questionRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if question.ReferenceImage != "" {
		_ = qs.files.Delete(question.ReferenceImage)
	}
	if question.ReferenceDocument != "" {
		_ = qs.files.Delete(question.ReferenceDocument)
	}
	return nil
}

func validateQuestionInput(input *QuestionInput) error {
	if !types.IsValidQuestionType(input.QuestionType) {
		return fmt.Errorf("invalid question type: %s", input.QuestionType)
	}
	if input.Difficulty == "" {
		input.Difficulty = types.DifficultyMedium
	}
	if !types.IsValidDifficulty(input.Difficulty) {
		return fmt.Errorf("invalid difficulty: %s", input.Difficulty)
	}
	if strings.TrimSpace(input.QuestionText) == "" {
		return fmt.Errorf("question text is required")
	}
	if input.QuestionType == types.QuestionTypeMultipleChoice && len(input.Options) < 2 {
		return fmt.Errorf("multiple choice questions need at least two options")
	}
	return nil
}

func (qs *questionService) resolveConcepts(ctx context.Context, ids []uint) ([]types.Concept, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	concepts, err := qs.conceptRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load concepts: %w", err)
	}
	if len(concepts) != len(ids) {
		return nil, fmt.Errorf("one or more concepts not found")
	}
	return concepts, nil
}

// BuildOptions materializes option rows. An option is marked correct when its
// text equals the declared correct answer.
func BuildOptions(questionType string, texts []string, correctAnswer string) []types.QuestionOption {
	if questionType == types.QuestionTypeTrueFalse && len(texts) == 0 {
		texts = []string{"True", "False"}
	}
	out := make([]types.QuestionOption, 0, len(texts))
	for i, text := range texts {
		out = append(out, types.QuestionOption{
			OptionText:  text,
			OptionOrder: i + 1,
			IsCorrect:   text == correctAnswer,
		})
	}
	return out
}

// CanonicalAnswer picks the answer shown to graders and admins: for choice
// questions it is the text of the option flagged correct, otherwise the
// stored free-text answer.
func CanonicalAnswer(q *types.Question) string {
	if q.QuestionType == types.QuestionTypeMultipleChoice || q.QuestionType == types.QuestionTypeTrueFalse {
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return opt.OptionText
			}
		}
	}
	return q.CorrectAnswer
}

func (qs *questionService) toDTO(ctx context.Context, q *types.Question) *QuestionDTO {
	sn := qs.store.Snapshot()
	dto := &QuestionDTO{
		Question:    *q,
		LevelName:   taxonomy.MissingLabel,
		GradeName:   taxonomy.MissingLabel,
		UnitName:    taxonomy.MissingLabel,
		SubUnitName: taxonomy.MissingLabel,
	}
	dto.CorrectAnswer = CanonicalAnswer(q)

	if l := sn.Level(q.LevelID); l != nil {
		dto.LevelName = taxonomy.DisplayLabel(l.DisplayName, l.Name)
	}
	if q.SubUnitID != nil {
		chain := sn.ChainFromSubUnit(*q.SubUnitID)
		if chain.SubUnit != nil {
			dto.SubUnitName = taxonomy.DisplayLabel(chain.SubUnit.DisplayName, chain.SubUnit.Name)
		}
		if chain.Unit != nil {
			dto.UnitName = taxonomy.DisplayLabel(chain.Unit.DisplayName, chain.Unit.Name)
		}
		if chain.Grade != nil {
			dto.GradeName = taxonomy.DisplayLabel(chain.Grade.DisplayName, chain.Grade.Name)
		}
	}

	attempts, err := qs.attemptRepo.CountDistinctUsersByQuestion(ctx, nil, q.ID)
	if err != nil {
		qs.log.Warn("Failed to count attempts", "question_id", q.ID, "error", err)
		return dto
	}
	correct, err := qs.attemptRepo.CountCorrectUsersByQuestion(ctx, nil, q.ID)
	if err != nil {
		qs.log.Warn("Failed to count correct attempts", "question_id", q.ID, "error", err)
		return dto
	}
	dto.AttemptCount = attempts
	dto.CorrectCount = correct
	if attempts > 0 {
		dto.CorrectRate = float64(correct) / float64(attempts) * 100
	}
	return dto
}
