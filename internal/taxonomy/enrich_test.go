package taxonomy

import (
	"testing"

	"github.com/edutest/edutest-backend/internal/types"
)

func TestDisplayLabelFallback(t *testing.T) {
	if got := DisplayLabel("", "H1"); got != "H1" {
		t.Errorf("expected fallback to name, got %q", got)
	}
	if got := DisplayLabel("고1", "H1"); got != "고1" {
		t.Errorf("expected display name preferred, got %q", got)
	}
}

func TestEnrichConceptFullChain(t *testing.T) {
	sn := testSnapshot()
	c := sn.Concept(5000)
	row := sn.EnrichConcept(*c)

	if row.SubUnitName != "정수" {
		t.Errorf("subUnitName = %q", row.SubUnitName)
	}
	if row.UnitName != "수와 연산" {
		t.Errorf("unitName = %q", row.UnitName)
	}
	if row.GradeName != "1학년" {
		t.Errorf("gradeName = %q", row.GradeName)
	}
	if row.LevelName != "고등학교" {
		t.Errorf("expected level display name, got %q", row.LevelName)
	}
}

func TestEnrichConceptWithoutSubUnit(t *testing.T) {
	sn := testSnapshot()
	row := sn.EnrichConcept(*sn.Concept(5001))

	for label, got := range map[string]string{
		"subUnitName": row.SubUnitName,
		"unitName":    row.UnitName,
		"gradeName":   row.GradeName,
		"levelName":   row.LevelName,
	} {
		if got != MissingLabel {
			t.Errorf("%s = %q, want %q", label, got, MissingLabel)
		}
	}
}

func TestEnrichUnitBrokenChain(t *testing.T) {
	sn := NewSnapshot(nil, nil, []types.Unit{{ID: 100, GradeID: 77, Name: "u"}}, nil, nil)
	row := sn.EnrichUnit(*sn.Unit(100))
	if row.GradeName != MissingLabel || row.LevelName != MissingLabel {
		t.Errorf("expected missing labels past dangling grade, got %+v", row)
	}
}
