package taxonomy

import "testing"

func TestSelectionCascadeReset(t *testing.T) {
	var sel Selection
	sel.SetID(RankLevel, 1)
	sel.SetID(RankGrade, 10)
	sel.SetID(RankUnit, 100)
	sel.SetID(RankSubUnit, 1000)
	sel.SetID(RankConcept, 5000)

	sel.SetID(RankLevel, 2)

	if sel.LevelID != 2 {
		t.Fatalf("expected level 2, got %d", sel.LevelID)
	}
	if sel.GradeID != 0 || sel.UnitID != 0 || sel.SubUnitID != 0 || sel.ConceptID != 0 {
		t.Errorf("expected all lower ranks cleared, got %+v", sel)
	}
}

func TestSelectionMidRankReset(t *testing.T) {
	sel := Selection{LevelID: 1, GradeID: 10, UnitID: 100, SubUnitID: 1000, ConceptID: 5000}

	sel.SetID(RankGrade, 11)

	if sel.LevelID != 1 {
		t.Errorf("level must survive a grade change, got %d", sel.LevelID)
	}
	if sel.GradeID != 11 {
		t.Errorf("expected grade 11, got %d", sel.GradeID)
	}
	if sel.UnitID != 0 || sel.SubUnitID != 0 || sel.ConceptID != 0 {
		t.Errorf("expected ranks below grade cleared, got %+v", sel)
	}
}

func TestSelectionSetBadInputClearsRank(t *testing.T) {
	sel := Selection{LevelID: 1, GradeID: 10, UnitID: 100}
	sel.Set(RankGrade, "not-a-number")
	if sel.GradeID != 0 {
		t.Errorf("expected grade cleared on bad input, got %d", sel.GradeID)
	}
	if sel.UnitID != 0 {
		t.Errorf("expected unit cleared along with grade, got %d", sel.UnitID)
	}
}

func TestSelectionOptions(t *testing.T) {
	sn := testSnapshot()
	sel := Selection{LevelID: 1}

	grades := sel.Options(sn, RankGrade)
	if len(grades) != 2 {
		t.Fatalf("expected 2 grade options under level 1, got %d", len(grades))
	}

	if units := sel.Options(sn, RankUnit); len(units) != 0 {
		t.Errorf("expected no unit options before a grade is chosen, got %d", len(units))
	}
}
