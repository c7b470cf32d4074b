package services

import (
	"strings"
	"testing"

	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

func uintPtr(v uint) *uint { return &v }

func genSnapshot() *taxonomy.Snapshot {
	return taxonomy.NewSnapshot(
		[]types.Level{{ID: 1, Name: "중등", DisplayName: "중학교"}},
		[]types.Grade{{ID: 10, LevelID: 1, Name: "중1", DisplayName: "1학년"}},
		[]types.Unit{{ID: 100, GradeID: 10, Name: "수와 연산"}},
		[]types.SubUnit{{ID: 1000, UnitID: 100, Name: "정수와 유리수"}},
		[]types.Concept{{ID: 5000, SubUnitID: uintPtr(1000), Name: "절댓값"}},
	)
}

func TestBuildSystemPromptIncludesAncestorChain(t *testing.T) {
	sn := genSnapshot()
	concept := sn.Concept(5000)
	prompt := BuildSystemPrompt(sn, concept)

	for _, want := range []string{"중학교", "1학년", "수와 연산", "정수와 유리수", "절댓값"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q:\n%s", want, prompt)
		}
	}
	if !strings.Contains(prompt, "questionText") {
		t.Error("system prompt must pin the output JSON shape")
	}
}

func TestBuildSystemPromptUnfiledConcept(t *testing.T) {
	sn := genSnapshot()
	concept := &types.Concept{ID: 9, Name: "미분류"}
	prompt := BuildSystemPrompt(sn, concept)
	if !strings.Contains(prompt, "미분류") {
		t.Error("concept name must appear even without a chain")
	}
	if strings.Contains(prompt, "학년:") {
		t.Error("no grade line expected for an unfiled concept")
	}
}

func TestBuildUserPromptIncludesHints(t *testing.T) {
	concept := &types.Concept{ID: 5000, Name: "절댓값"}
	prompt := BuildUserPrompt(concept, GenerateQuestionInput{
		QuestionType:  types.QuestionTypeMultipleChoice,
		Difficulty:    types.DifficultyHard,
		UserPrompt:    "실생활 예시를 포함해 주세요",
		CorrectAnswer: "3",
	})

	for _, want := range []string{"객관식", "어려움", "절댓값", "실생활 예시", "'3'"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("user prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildUserPromptOmitsUnsetHints(t *testing.T) {
	concept := &types.Concept{ID: 5000, Name: "절댓값"}
	prompt := BuildUserPrompt(concept, GenerateQuestionInput{
		QuestionType: types.QuestionTypeShortAnswer,
		Difficulty:   types.DifficultyEasy,
	})
	if strings.Contains(prompt, "추가 요청사항") || strings.Contains(prompt, "참고 자료") {
		t.Errorf("unset hints must not appear:\n%s", prompt)
	}
	if strings.Contains(prompt, "선택지는 4개") {
		t.Error("option-count rule only applies to multiple choice")
	}
}

func TestParseGeneratedQuestionPlainJSON(t *testing.T) {
	draft, err := ParseGeneratedQuestion(`{"questionText": "1+1은?", "options": ["1", "2"], "correctAnswer": "2", "explanation": "덧셈"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if draft.QuestionText != "1+1은?" || draft.CorrectAnswer != "2" {
		t.Errorf("unexpected draft: %+v", draft)
	}
	if len(draft.Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(draft.Options))
	}
}

func TestParseGeneratedQuestionSurroundingProse(t *testing.T) {
	reply := "알겠습니다. 요청하신 문제입니다:\n```json\n" +
		`{"questionText": "절댓값이 3인 정수를 모두 고르시오.", "options": ["3", "-3", "0", "1"], "correctAnswer": "3", "explanation": "..." }` +
		"\n```\n도움이 되셨기를 바랍니다."
	draft, err := ParseGeneratedQuestion(reply)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(draft.QuestionText, "절댓값") {
		t.Errorf("unexpected question text: %q", draft.QuestionText)
	}
}

func TestParseGeneratedQuestionNestedBraces(t *testing.T) {
	reply := `{"questionText": "집합 {1, 2}의 원소 개수는?", "options": [], "correctAnswer": "2", "explanation": "중괄호 포함"}`
	draft, err := ParseGeneratedQuestion(reply)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(draft.QuestionText, "{1, 2}") {
		t.Errorf("braces inside strings must survive extraction: %q", draft.QuestionText)
	}
}

func TestParseGeneratedQuestionRejectsGarbage(t *testing.T) {
	if _, err := ParseGeneratedQuestion("죄송합니다, 문제를 만들 수 없습니다."); err == nil {
		t.Error("reply without JSON must fail")
	}
	if _, err := ParseGeneratedQuestion(`{"questionText": ""}`); err == nil {
		t.Error("empty questionText must fail")
	}
	if _, err := ParseGeneratedQuestion(`{"questionText": "truncated`); err == nil {
		t.Error("unterminated JSON must fail")
	}
}
