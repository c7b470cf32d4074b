package questionbank

import (
	"testing"

	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

func uintPtr(v uint) *uint { return &v }

func bankSnapshot() *taxonomy.Snapshot {
	return taxonomy.NewSnapshot(
		[]types.Level{{ID: 1, Name: "고등"}},
		[]types.Grade{{ID: 10, LevelID: 1, Name: "1학년"}},
		[]types.Unit{
			{ID: 100, GradeID: 10, Name: "수와 연산"},
			{ID: 101, GradeID: 10, Name: "문자와 식"},
		},
		[]types.SubUnit{
			{ID: 1000, UnitID: 100, Name: "정수"},
			{ID: 1001, UnitID: 101, Name: "일차방정식"},
		},
		[]types.Concept{
			{ID: 5000, SubUnitID: uintPtr(1000), Name: "절댓값", DisplayName: "절댓값과 수직선"},
			{ID: 5001, SubUnitID: uintPtr(1001), Name: "이항"},
		},
	)
}

func bankQuestions() []types.Question {
	return []types.Question{
		{
			ID: 1, LevelID: 1, SubUnitID: uintPtr(1000),
			QuestionType: types.QuestionTypeMultipleChoice, Difficulty: types.DifficultyHard,
			Concepts: []types.Concept{{ID: 5000, Name: "절댓값", DisplayName: "절댓값과 수직선"}},
		},
		{
			ID: 2, LevelID: 1, SubUnitID: uintPtr(1001),
			QuestionType: types.QuestionTypeShortAnswer, Difficulty: types.DifficultyEasy,
			Concepts: []types.Concept{{ID: 5001, Name: "이항"}},
		},
		{
			ID: 3, LevelID: 2, SubUnitID: nil,
			QuestionType: types.QuestionTypeMultipleChoice, Difficulty: types.DifficultyHard,
		},
	}
}

func ids(qs []types.Question) []uint {
	out := make([]uint, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	got := Filter{}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 3 {
		t.Fatalf("empty filter kept %d of 3", len(got))
	}
	want := []uint{1, 2, 3}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("order changed: got %v", ids(got))
		}
	}
}

func TestFilterByLevel(t *testing.T) {
	got := Filter{LevelID: 1}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 2 {
		t.Fatalf("expected 2 questions at level 1, got %v", ids(got))
	}
}

func TestFilterByGradeThroughChain(t *testing.T) {
	got := Filter{GradeID: 10}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 2 {
		t.Fatalf("expected 2 questions under grade 10, got %v", ids(got))
	}
	// question 3 has no sub-unit, so it can never satisfy a grade criterion
	for _, q := range got {
		if q.ID == 3 {
			t.Error("question without sub-unit matched a grade filter")
		}
	}
}

func TestFilterByUnit(t *testing.T) {
	got := Filter{UnitID: 101}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only question 2 under unit 101, got %v", ids(got))
	}
}

func TestFilterHardDifficultyScenario(t *testing.T) {
	f := Filter{
		LevelID:      1,
		GradeID:      10,
		UnitID:       100,
		Difficulty:   types.DifficultyHard,
		QuestionType: types.QuestionTypeMultipleChoice,
	}
	got := f.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only question 1, got %v", ids(got))
	}
}

func TestFilterByConceptText(t *testing.T) {
	got := Filter{ConceptText: "수직선"}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected display-label substring to match question 1, got %v", ids(got))
	}

	// falls back to name when no display name is set
	got = Filter{ConceptText: "이항"}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected name substring to match question 2, got %v", ids(got))
	}
}

func TestFilterByConceptID(t *testing.T) {
	got := Filter{ConceptID: 5001}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected concept filter to keep question 2, got %v", ids(got))
	}
}

func TestFilterCombinedNoMatch(t *testing.T) {
	got := Filter{LevelID: 1, Difficulty: types.DifficultyVeryHard}.Apply(bankSnapshot(), bankQuestions())
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}
