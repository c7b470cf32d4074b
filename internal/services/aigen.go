package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

type GenerateQuestionInput struct {
	ConceptID     uint   `json:"conceptId" binding:"required"`
	QuestionType  string `json:"questionType"`
	Difficulty    string `json:"difficulty"`
	UserPrompt    string `json:"userPrompt"`
	CorrectAnswer string `json:"correctAnswer"`
	GenerateImage bool   `json:"generateImage"`

	ReferenceImage []byte `json:"-"`
	DocumentText   string `json:"-"`
}

// GeneratedQuestion is a draft for the admin to review, not a persisted row.
type GeneratedQuestion struct {
	QuestionText      string   `json:"questionText"`
	QuestionType      string   `json:"questionType"`
	Difficulty        string   `json:"difficulty"`
	Options           []string `json:"options"`
	CorrectAnswer     string   `json:"correctAnswer"`
	Explanation       string   `json:"explanation"`
	ConceptID         uint     `json:"conceptId"`
	GeneratedImageURL string   `json:"generatedImageUrl,omitempty"`
}

type QuestionGenService interface {
	Generate(ctx context.Context, userID uint, input GenerateQuestionInput) (*GeneratedQuestion, error)
}

type questionGenService struct {
	db          *gorm.DB
	log         *logger.Logger
	ai          AIClient
	conceptRepo repos.ConceptRepo
	callLogRepo repos.AICallLogRepo
	store       *taxonomy.Store
	files       FileStorageService
	model       string
}

func NewQuestionGenService(
	db *gorm.DB,
	log *logger.Logger,
	ai AIClient,
	conceptRepo repos.ConceptRepo,
	callLogRepo repos.AICallLogRepo,
	store *taxonomy.Store,
	files FileStorageService,
) QuestionGenService {
	serviceLog := log.With("service", "QuestionGenService")
	return &questionGenService{
		db:          db,
		log:         serviceLog,
		ai:          ai,
		conceptRepo: conceptRepo,
		callLogRepo: callLogRepo,
		store:       store,
		files:       files,
	}
}

func (gs *questionGenService) Generate(ctx context.Context, userID uint, input GenerateQuestionInput) (*GeneratedQuestion, error) {
	concept, err := gs.conceptRepo.GetByID(ctx, nil, input.ConceptID)
	if err != nil {
		return nil, fmt.Errorf("concept not found: %d", input.ConceptID)
	}

	questionType := input.QuestionType
	if questionType == "" {
		questionType = types.QuestionTypeMultipleChoice
	}
	if !types.IsValidQuestionType(questionType) {
		return nil, fmt.Errorf("invalid question type: %s", questionType)
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = types.DifficultyMedium
	}
	if !types.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("invalid difficulty: %s", difficulty)
	}

	input.QuestionType = questionType
	input.Difficulty = difficulty

	system := BuildSystemPrompt(gs.store.Snapshot(), concept)
	user := BuildUserPrompt(concept, input)

	result, err := gs.ai.GenerateText(ctx, system, user, input.ReferenceImage)
	if err != nil {
		gs.logCall(ctx, userID, concept.ID, "QUESTION_GENERATION", "", system+"\n\n"+user, "", false, err.Error(), nil)
		return nil, fmt.Errorf("question generation failed: %w", err)
	}
	gs.logCall(ctx, userID, concept.ID, "QUESTION_GENERATION", result.Model, system+"\n\n"+user, result.Content, true, "", result.Usage)

	draft, err := ParseGeneratedQuestion(result.Content)
	if err != nil {
		return nil, fmt.Errorf("model reply was not usable: %w", err)
	}
	draft.QuestionType = questionType
	draft.Difficulty = difficulty
	draft.ConceptID = concept.ID

	if input.GenerateImage {
		imagePrompt := fmt.Sprintf("A clean educational illustration for a quiz question about %s. No text in the image.",
			taxonomy.DisplayLabel(concept.DisplayName, concept.Name))
		data, err := gs.ai.GenerateImage(ctx, imagePrompt)
		if err != nil {
			// image failure does not sink the generated question
			gs.log.Warn("Image generation failed", "concept_id", concept.ID, "error", err)
			gs.logCall(ctx, userID, concept.ID, "IMAGE_GENERATION", "", imagePrompt, "", false, err.Error(), nil)
		} else {
			path, saveErr := gs.files.SaveBytes(data, "ai-generated", ".png")
			if saveErr != nil {
				gs.log.Warn("Failed to store generated image", "error", saveErr)
			} else {
				draft.GeneratedImageURL = "/api/questions/files/" + path
			}
			gs.logCall(ctx, userID, concept.ID, "IMAGE_GENERATION", "", imagePrompt, draft.GeneratedImageURL, true, "", nil)
		}
	}

	return draft, nil
}

// BuildSystemPrompt situates the model inside the curriculum: the concept's
// full ancestor chain is spelled out so generated questions match the course
// position, not just the concept name.
func BuildSystemPrompt(sn *taxonomy.Snapshot, concept *types.Concept) string {
	var b strings.Builder
	b.WriteString("당신은 한국 교육과정 전문 출제위원입니다. 주어진 교육과정 위치에 맞는 문제를 출제하세요.\n")
	b.WriteString("교육과정 위치:\n")

	if concept.SubUnitID != nil {
		chain := sn.ChainFromSubUnit(*concept.SubUnitID)
		if chain.Level != nil {
			b.WriteString(fmt.Sprintf("- 학교급: %s\n", taxonomy.DisplayLabel(chain.Level.DisplayName, chain.Level.Name)))
		}
		if chain.Grade != nil {
			b.WriteString(fmt.Sprintf("- 학년: %s\n", taxonomy.DisplayLabel(chain.Grade.DisplayName, chain.Grade.Name)))
		}
		if chain.Unit != nil {
			b.WriteString(fmt.Sprintf("- 단원: %s\n", taxonomy.DisplayLabel(chain.Unit.DisplayName, chain.Unit.Name)))
		}
		if chain.SubUnit != nil {
			b.WriteString(fmt.Sprintf("- 소단원: %s\n", taxonomy.DisplayLabel(chain.SubUnit.DisplayName, chain.SubUnit.Name)))
		}
	}
	b.WriteString(fmt.Sprintf("- 개념: %s\n", taxonomy.DisplayLabel(concept.DisplayName, concept.Name)))
	if concept.Description != "" {
		b.WriteString(fmt.Sprintf("- 개념 설명: %s\n", concept.Description))
	}

	b.WriteString("\n반드시 아래 형식의 JSON 객체 하나만 출력하세요:\n")
	b.WriteString(`{"questionText": "...", "options": ["...", "..."], "correctAnswer": "...", "explanation": "..."}`)
	return b.String()
}

func BuildUserPrompt(concept *types.Concept, input GenerateQuestionInput) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("문제 유형: %s\n난이도: %s\n", koreanQuestionType(input.QuestionType), koreanDifficulty(input.Difficulty)))
	b.WriteString(fmt.Sprintf("'%s' 개념에 대한 문제를 한 개 출제해 주세요.\n", taxonomy.DisplayLabel(concept.DisplayName, concept.Name)))
	if input.QuestionType == types.QuestionTypeMultipleChoice {
		b.WriteString("선택지는 4개이며 정답은 선택지 중 하나와 정확히 일치해야 합니다.\n")
	}
	if input.CorrectAnswer != "" {
		b.WriteString(fmt.Sprintf("정답이 '%s'가 되도록 문제를 구성해 주세요.\n", input.CorrectAnswer))
	}
	if input.UserPrompt != "" {
		b.WriteString("추가 요청사항: " + input.UserPrompt + "\n")
	}
	if input.DocumentText != "" {
		b.WriteString("참고 자료:\n" + input.DocumentText + "\n")
	}
	if len(input.ReferenceImage) > 0 {
		b.WriteString("첨부된 이미지를 참고하여 출제해 주세요.\n")
	}
	return b.String()
}

func koreanQuestionType(t string) string {
	switch t {
	case types.QuestionTypeMultipleChoice:
		return "객관식"
	case types.QuestionTypeTrueFalse:
		return "참/거짓"
	case types.QuestionTypeShortAnswer:
		return "단답형"
	case types.QuestionTypeEssay:
		return "서술형"
	}
	return t
}

func koreanDifficulty(d string) string {
	switch d {
	case types.DifficultyVeryEasy:
		return "매우 쉬움"
	case types.DifficultyEasy:
		return "쉬움"
	case types.DifficultyMedium:
		return "보통"
	case types.DifficultyHard:
		return "어려움"
	case types.DifficultyVeryHard:
		return "매우 어려움"
	}
	return d
}

// ParseGeneratedQuestion pulls the first JSON object out of the model reply.
// Models pad answers with prose or code fences; everything outside the first
// balanced {...} span is ignored.
func ParseGeneratedQuestion(reply string) (*GeneratedQuestion, error) {
	raw, err := extractJSONObject(reply)
	if err != nil {
		return nil, err
	}
	var draft GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("invalid JSON in reply: %w", err)
	}
	if strings.TrimSpace(draft.QuestionText) == "" {
		return nil, fmt.Errorf("reply has no questionText")
	}
	return &draft, nil
}

func extractJSONObject(s string) (string, error) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", fmt.Errorf("no JSON object in reply")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unterminated JSON object in reply")
}

func (gs *questionGenService) logCall(ctx context.Context, userID, conceptID uint, callType, model, prompt, response string, success bool, errMsg string, usage map[string]any) {
	entry := &types.AICallLog{
		ID:       uuid.New(),
		CallType: callType,
		Model:    model,
		Prompt:   prompt,
		Response: response,
		Success:  success,
		Error:    errMsg,
	}
	if userID != 0 {
		entry.UserID = &userID
	}
	if conceptID != 0 {
		entry.ConceptID = &conceptID
	}
	if usage != nil {
		if raw, err := json.Marshal(usage); err == nil {
			entry.Usage = datatypes.JSON(raw)
		}
	}
	if _, err := gs.callLogRepo.Create(ctx, nil, entry); err != nil {
		gs.log.Warn("Failed to record AI call", "call_type", callType, "error", err)
	}
}
