package taxonomy

import (
	"github.com/edutest/edutest-backend/internal/types"
)

// MissingLabel is rendered wherever an ancestor cannot be resolved.
const MissingLabel = "-"

// DisplayLabel is the one place the display-name fallback lives: an entity
// with no display name is labeled by its name.
func DisplayLabel(displayName, name string) string {
	if displayName != "" {
		return displayName
	}
	return name
}

func labelOrMissing(displayName, name string) string {
	l := DisplayLabel(displayName, name)
	if l == "" {
		return MissingLabel
	}
	return l
}

// EnrichedGrade through EnrichedConcept are display rows carrying the
// denormalized labels of every applicable ancestor, so a table render never
// goes back to the store. They are recomputed from the current snapshot on
// demand, not cached.

type EnrichedGrade struct {
	types.Grade
	LevelName string `json:"levelName"`
}

type EnrichedUnit struct {
	types.Unit
	GradeName string `json:"gradeName"`
	LevelName string `json:"levelName"`
}

type EnrichedSubUnit struct {
	types.SubUnit
	UnitName  string `json:"unitName"`
	GradeName string `json:"gradeName"`
	LevelName string `json:"levelName"`
}

type EnrichedConcept struct {
	types.Concept
	SubUnitName string `json:"subUnitName"`
	UnitName    string `json:"unitName"`
	GradeName   string `json:"gradeName"`
	LevelName   string `json:"levelName"`
}

func (sn *Snapshot) EnrichGrade(g types.Grade) EnrichedGrade {
	out := EnrichedGrade{Grade: g, LevelName: MissingLabel}
	if l := sn.Level(g.LevelID); l != nil {
		out.LevelName = labelOrMissing(l.DisplayName, l.Name)
	}
	return out
}

func (sn *Snapshot) EnrichUnit(u types.Unit) EnrichedUnit {
	out := EnrichedUnit{Unit: u, GradeName: MissingLabel, LevelName: MissingLabel}
	g := sn.Grade(u.GradeID)
	if g == nil {
		return out
	}
	out.GradeName = labelOrMissing(g.DisplayName, g.Name)
	if l := sn.Level(g.LevelID); l != nil {
		out.LevelName = labelOrMissing(l.DisplayName, l.Name)
	}
	return out
}

func (sn *Snapshot) EnrichSubUnit(su types.SubUnit) EnrichedSubUnit {
	out := EnrichedSubUnit{SubUnit: su, UnitName: MissingLabel, GradeName: MissingLabel, LevelName: MissingLabel}
	u := sn.Unit(su.UnitID)
	if u == nil {
		return out
	}
	out.UnitName = labelOrMissing(u.DisplayName, u.Name)
	g := sn.Grade(u.GradeID)
	if g == nil {
		return out
	}
	out.GradeName = labelOrMissing(g.DisplayName, g.Name)
	if l := sn.Level(g.LevelID); l != nil {
		out.LevelName = labelOrMissing(l.DisplayName, l.Name)
	}
	return out
}

func (sn *Snapshot) EnrichConcept(c types.Concept) EnrichedConcept {
	out := EnrichedConcept{
		Concept:     c,
		SubUnitName: MissingLabel,
		UnitName:    MissingLabel,
		GradeName:   MissingLabel,
		LevelName:   MissingLabel,
	}
	if c.SubUnitID == nil {
		return out
	}
	a := sn.ChainFromSubUnit(*c.SubUnitID)
	if a.SubUnit != nil {
		out.SubUnitName = labelOrMissing(a.SubUnit.DisplayName, a.SubUnit.Name)
	}
	if a.Unit != nil {
		out.UnitName = labelOrMissing(a.Unit.DisplayName, a.Unit.Name)
	}
	if a.Grade != nil {
		out.GradeName = labelOrMissing(a.Grade.DisplayName, a.Grade.Name)
	}
	if a.Level != nil {
		out.LevelName = labelOrMissing(a.Level.DisplayName, a.Level.Name)
	}
	return out
}
