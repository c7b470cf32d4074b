package services

import (
	"testing"

	"github.com/edutest/edutest-backend/internal/types"
)

func mcQuestion() *types.Question {
	return &types.Question{
		QuestionType:  types.QuestionTypeMultipleChoice,
		CorrectAnswer: "stale stored answer",
		Options: []types.QuestionOption{
			{OptionText: "2", OptionOrder: 1},
			{OptionText: "4", OptionOrder: 2, IsCorrect: true},
			{OptionText: "6", OptionOrder: 3},
		},
	}
}

func TestGradeAnswerMultipleChoice(t *testing.T) {
	q := mcQuestion()
	if !GradeAnswer(q, "4") {
		t.Error("exact correct option text must grade correct")
	}
	if GradeAnswer(q, "2") {
		t.Error("wrong option must grade incorrect")
	}
	if GradeAnswer(q, " 4 ") {
		t.Error("multiple choice comparison is exact, no trimming")
	}
}

func TestGradeAnswerMultipleChoiceNoCorrectOption(t *testing.T) {
	q := mcQuestion()
	for i := range q.Options {
		q.Options[i].IsCorrect = false
	}
	if GradeAnswer(q, "4") {
		t.Error("a question with no correct option can never be answered correctly")
	}
}

func TestGradeAnswerShortAnswer(t *testing.T) {
	q := &types.Question{
		QuestionType:  types.QuestionTypeShortAnswer,
		CorrectAnswer: "Photosynthesis",
	}
	if !GradeAnswer(q, "photosynthesis") {
		t.Error("short answers compare case-insensitively")
	}
	if !GradeAnswer(q, "  Photosynthesis  ") {
		t.Error("short answers are trimmed before comparison")
	}
	if GradeAnswer(q, "respiration") {
		t.Error("wrong answer must grade incorrect")
	}
}

func TestGradeAnswerEmptyStoredAnswer(t *testing.T) {
	q := &types.Question{QuestionType: types.QuestionTypeShortAnswer, CorrectAnswer: "  "}
	if GradeAnswer(q, "") {
		t.Error("empty stored answer must never grade an empty submission correct")
	}
}

func TestGradeAnswerTrueFalse(t *testing.T) {
	q := &types.Question{
		QuestionType: types.QuestionTypeTrueFalse,
		Options: []types.QuestionOption{
			{OptionText: "True", OptionOrder: 1, IsCorrect: true},
			{OptionText: "False", OptionOrder: 2},
		},
	}
	if !GradeAnswer(q, "true") {
		t.Error("true/false grading uses the correct option text, case-insensitive")
	}
	if GradeAnswer(q, "false") {
		t.Error("wrong true/false answer must grade incorrect")
	}
}
