package questionbank

import (
	"strings"

	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

// Filter narrows a question list. Zero-valued criteria are ignored, every set
// criterion must match (AND). Grade and unit are not stored on the question,
// so they are resolved through the sub-unit ancestor chain of the snapshot.
type Filter struct {
	LevelID      uint
	GradeID      uint
	UnitID       uint
	SubUnitID    uint
	ConceptID    uint
	ConceptText  string
	QuestionType string
	Difficulty   string
}

// Apply returns the questions matching every set criterion, preserving the
// input order. The input slice is never mutated.
func (f Filter) Apply(sn *taxonomy.Snapshot, questions []types.Question) []types.Question {
	out := make([]types.Question, 0, len(questions))
	for _, q := range questions {
		if f.matches(sn, &q) {
			out = append(out, q)
		}
	}
	return out
}

func (f Filter) matches(sn *taxonomy.Snapshot, q *types.Question) bool {
	if f.LevelID != 0 && q.LevelID != f.LevelID {
		return false
	}
	if f.SubUnitID != 0 {
		if q.SubUnitID == nil || *q.SubUnitID != f.SubUnitID {
			return false
		}
	}
	if f.GradeID != 0 || f.UnitID != 0 {
		if q.SubUnitID == nil {
			return false
		}
		chain := sn.ChainFromSubUnit(*q.SubUnitID)
		if f.UnitID != 0 && (chain.Unit == nil || chain.Unit.ID != f.UnitID) {
			return false
		}
		if f.GradeID != 0 && (chain.Grade == nil || chain.Grade.ID != f.GradeID) {
			return false
		}
	}
	if f.ConceptID != 0 && !hasConceptID(q, f.ConceptID) {
		return false
	}
	if f.ConceptText != "" && !matchesConceptText(q, f.ConceptText) {
		return false
	}
	if f.QuestionType != "" && q.QuestionType != f.QuestionType {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	return true
}

func hasConceptID(q *types.Question, id uint) bool {
	for _, c := range q.Concepts {
		if c.ID == id {
			return true
		}
	}
	return false
}

// matchesConceptText does a case-insensitive substring match over each tagged
// concept's display label.
func matchesConceptText(q *types.Question, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	for _, c := range q.Concepts {
		label := taxonomy.DisplayLabel(c.DisplayName, c.Name)
		if strings.Contains(strings.ToLower(label), needle) {
			return true
		}
	}
	return false
}
