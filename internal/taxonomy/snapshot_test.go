package taxonomy

import (
	"testing"

	"github.com/edutest/edutest-backend/internal/types"
)

func uintPtr(v uint) *uint { return &v }

func testSnapshot() *Snapshot {
	return NewSnapshot(
		[]types.Level{
			{ID: 1, Name: "고등", DisplayName: "고등학교", OrderIndex: 1},
			{ID: 2, Name: "중등", DisplayName: "중학교", OrderIndex: 2},
		},
		[]types.Grade{
			{ID: 10, LevelID: 1, Name: "1학년", OrderIndex: 1},
			{ID: 11, LevelID: 1, Name: "2학년", OrderIndex: 2},
			{ID: 20, LevelID: 2, Name: "1학년", OrderIndex: 1},
		},
		[]types.Unit{
			{ID: 100, GradeID: 10, Name: "수와 연산", OrderIndex: 1},
			{ID: 101, GradeID: 10, Name: "문자와 식", OrderIndex: 2},
		},
		[]types.SubUnit{
			{ID: 1000, UnitID: 100, Name: "정수", OrderIndex: 1},
		},
		[]types.Concept{
			{ID: 5000, SubUnitID: uintPtr(1000), Name: "절댓값", OrderIndex: 1},
			{ID: 5001, SubUnitID: nil, Name: "미분류 개념", OrderIndex: 2},
		},
	)
}

func TestParseID(t *testing.T) {
	cases := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"10", 10, true},
		{"  7 ", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseID(c.raw)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseID(%q) = (%d, %v), want (%d, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestChildrenOfZeroParent(t *testing.T) {
	sn := testSnapshot()

	for _, rank := range []Rank{RankGrade, RankUnit, RankSubUnit, RankConcept} {
		if got := sn.ChildrenOf(0, rank); len(got) != 0 {
			t.Errorf("ChildrenOf(0, %d) returned %d nodes, want none", rank, len(got))
		}
	}

	levels := sn.ChildrenOf(0, RankLevel)
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Name != "고등" {
		t.Errorf("expected first level 고등, got %q", levels[0].Name)
	}
}

func TestChildrenOfAbsentParent(t *testing.T) {
	sn := testSnapshot()
	if got := sn.ChildrenOf(999, RankUnit); len(got) != 0 {
		t.Errorf("expected no units under absent grade, got %d", len(got))
	}
}

func TestChildrenOfCascade(t *testing.T) {
	sn := testSnapshot()

	grades := sn.ChildrenOf(1, RankGrade)
	if len(grades) != 2 {
		t.Fatalf("expected 2 grades under level 1, got %d", len(grades))
	}
	if grades[0].ID != 10 || grades[1].ID != 11 {
		t.Errorf("grades out of order: %v", grades)
	}

	units := sn.ChildrenOf(10, RankUnit)
	if len(units) != 2 {
		t.Fatalf("expected 2 units under grade 10, got %d", len(units))
	}
	if units[0].ID != 100 {
		t.Errorf("expected unit 100 first, got %d", units[0].ID)
	}

	concepts := sn.ChildrenOf(1000, RankConcept)
	if len(concepts) != 1 || concepts[0].ID != 5000 {
		t.Errorf("expected concept 5000 under sub-unit 1000, got %v", concepts)
	}
}

func TestChildrenOrderTiesBreakByID(t *testing.T) {
	sn := NewSnapshot(
		[]types.Level{
			{ID: 3, Name: "b", OrderIndex: 1},
			{ID: 1, Name: "a", OrderIndex: 1},
			{ID: 2, Name: "c", OrderIndex: 0},
		},
		nil, nil, nil, nil,
	)
	levels := sn.ChildrenOf(0, RankLevel)
	want := []uint{2, 1, 3}
	for i, l := range levels {
		if l.ID != want[i] {
			t.Fatalf("level order = %v at %d, want ids %v", l.ID, i, want)
		}
	}
}

func TestAncestorsOf(t *testing.T) {
	sn := testSnapshot()

	a := sn.AncestorsOf(5000)
	if a.SubUnit == nil || a.SubUnit.ID != 1000 {
		t.Fatalf("expected sub-unit 1000, got %+v", a.SubUnit)
	}
	if a.Unit == nil || a.Unit.ID != 100 {
		t.Fatalf("expected unit 100, got %+v", a.Unit)
	}
	if a.Grade == nil || a.Grade.ID != 10 {
		t.Fatalf("expected grade 10, got %+v", a.Grade)
	}
	if a.Level == nil || a.Level.ID != 1 {
		t.Fatalf("expected level 1, got %+v", a.Level)
	}
}

func TestAncestorsOfUnassignedConcept(t *testing.T) {
	sn := testSnapshot()
	a := sn.AncestorsOf(5001)
	if a.SubUnit != nil || a.Unit != nil || a.Grade != nil || a.Level != nil {
		t.Errorf("expected empty chain for concept without sub-unit, got %+v", a)
	}
}

func TestChainFromSubUnitDanglingFK(t *testing.T) {
	sn := NewSnapshot(
		nil,
		nil,
		[]types.Unit{{ID: 100, GradeID: 77, Name: "u"}},
		[]types.SubUnit{{ID: 1000, UnitID: 100, Name: "su"}},
		nil,
	)
	a := sn.ChainFromSubUnit(1000)
	if a.SubUnit == nil || a.Unit == nil {
		t.Fatalf("expected sub-unit and unit resolved, got %+v", a)
	}
	if a.Grade != nil || a.Level != nil {
		t.Errorf("expected chain broken at grade, got grade=%+v level=%+v", a.Grade, a.Level)
	}
}

func TestParseRank(t *testing.T) {
	for name, want := range map[string]Rank{
		"level":    RankLevel,
		"grade":    RankGrade,
		"unit":     RankUnit,
		"subunit":  RankSubUnit,
		"sub-unit": RankSubUnit,
		"concept":  RankConcept,
	} {
		got, ok := ParseRank(name)
		if !ok || got != want {
			t.Errorf("ParseRank(%q) = (%d, %v), want (%d, true)", name, got, ok, want)
		}
	}
	if _, ok := ParseRank("chapter"); ok {
		t.Error("expected ParseRank to reject unknown rank")
	}
}
