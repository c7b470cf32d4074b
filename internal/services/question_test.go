package services

import (
	"testing"

	"github.com/edutest/edutest-backend/internal/types"
)

func TestBuildOptionsMarksCorrect(t *testing.T) {
	options := BuildOptions(types.QuestionTypeMultipleChoice, []string{"서울", "부산", "대구"}, "부산")
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
	for _, opt := range options {
		want := opt.OptionText == "부산"
		if opt.IsCorrect != want {
			t.Errorf("option %q correct=%v, want %v", opt.OptionText, opt.IsCorrect, want)
		}
	}
	if options[0].OptionOrder != 1 || options[2].OptionOrder != 3 {
		t.Errorf("option order not sequential: %+v", options)
	}
}

func TestBuildOptionsNoMatchMarksNone(t *testing.T) {
	options := BuildOptions(types.QuestionTypeMultipleChoice, []string{"a", "b"}, "c")
	for _, opt := range options {
		if opt.IsCorrect {
			t.Errorf("no option should be correct when answer matches none, got %q", opt.OptionText)
		}
	}
}

func TestBuildOptionsTrueFalseDefaults(t *testing.T) {
	options := BuildOptions(types.QuestionTypeTrueFalse, nil, "False")
	if len(options) != 2 {
		t.Fatalf("expected default True/False pair, got %d", len(options))
	}
	if options[0].OptionText != "True" || options[1].OptionText != "False" {
		t.Errorf("unexpected defaults: %+v", options)
	}
	if !options[1].IsCorrect || options[0].IsCorrect {
		t.Error("False should be the correct option")
	}
}

func TestCanonicalAnswerPrefersCorrectOption(t *testing.T) {
	q := mcQuestion()
	if got := CanonicalAnswer(q); got != "4" {
		t.Errorf("expected correct option text, got %q", got)
	}
}

func TestCanonicalAnswerFallsBackToStored(t *testing.T) {
	q := &types.Question{
		QuestionType:  types.QuestionTypeEssay,
		CorrectAnswer: "model essay answer",
		Options:       []types.QuestionOption{{OptionText: "x", IsCorrect: true}},
	}
	if got := CanonicalAnswer(q); got != "model essay answer" {
		t.Errorf("essay answers come from the stored text, got %q", got)
	}

	mc := mcQuestion()
	for i := range mc.Options {
		mc.Options[i].IsCorrect = false
	}
	if got := CanonicalAnswer(mc); got != "stale stored answer" {
		t.Errorf("expected stored answer fallback, got %q", got)
	}
}
