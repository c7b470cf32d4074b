package taxonomy

import (
	"sort"

	"github.com/edutest/edutest-backend/internal/types"
)

// Rank identifies one tier of the curriculum hierarchy.
type Rank int

const (
	RankLevel Rank = iota
	RankGrade
	RankUnit
	RankSubUnit
	RankConcept
)

func ParseRank(name string) (Rank, bool) {
	switch name {
	case "level":
		return RankLevel, true
	case "grade":
		return RankGrade, true
	case "unit":
		return RankUnit, true
	case "subunit", "sub-unit":
		return RankSubUnit, true
	case "concept":
		return RankConcept, true
	}
	return 0, false
}

// Node is the rank-agnostic projection of a hierarchy entity, used by the
// cascading child queries.
type Node struct {
	ID          uint
	ParentID    uint
	Name        string
	DisplayName string
	OrderIndex  int
}

// Ancestors is the resolved parent chain of a concept (or of anything hanging
// off a sub-unit). A nil field means the chain is broken at that point.
type Ancestors struct {
	SubUnit *types.SubUnit
	Unit    *types.Unit
	Grade   *types.Grade
	Level   *types.Level
}

// Snapshot is an immutable view over the five flat collections with parent
// lookups precomputed. All methods are read-only and safe for concurrent use.
type Snapshot struct {
	Levels   []types.Level
	Grades   []types.Grade
	Units    []types.Unit
	SubUnits []types.SubUnit
	Concepts []types.Concept

	levelByID   map[uint]*types.Level
	gradeByID   map[uint]*types.Grade
	unitByID    map[uint]*types.Unit
	subUnitByID map[uint]*types.SubUnit
	conceptByID map[uint]*types.Concept
}

// NewSnapshot builds a snapshot. Each collection is sorted by order index
// (then id, to keep sibling order deterministic when indexes collide).
func NewSnapshot(levels []types.Level, grades []types.Grade, units []types.Unit, subUnits []types.SubUnit, concepts []types.Concept) *Snapshot {
	sn := &Snapshot{
		Levels:   levels,
		Grades:   grades,
		Units:    units,
		SubUnits: subUnits,
		Concepts: concepts,
	}

	sort.SliceStable(sn.Levels, func(i, j int) bool { return lessByOrder(sn.Levels[i].OrderIndex, sn.Levels[i].ID, sn.Levels[j].OrderIndex, sn.Levels[j].ID) })
	sort.SliceStable(sn.Grades, func(i, j int) bool { return lessByOrder(sn.Grades[i].OrderIndex, sn.Grades[i].ID, sn.Grades[j].OrderIndex, sn.Grades[j].ID) })
	sort.SliceStable(sn.Units, func(i, j int) bool { return lessByOrder(sn.Units[i].OrderIndex, sn.Units[i].ID, sn.Units[j].OrderIndex, sn.Units[j].ID) })
	sort.SliceStable(sn.SubUnits, func(i, j int) bool { return lessByOrder(sn.SubUnits[i].OrderIndex, sn.SubUnits[i].ID, sn.SubUnits[j].OrderIndex, sn.SubUnits[j].ID) })
	sort.SliceStable(sn.Concepts, func(i, j int) bool { return lessByOrder(sn.Concepts[i].OrderIndex, sn.Concepts[i].ID, sn.Concepts[j].OrderIndex, sn.Concepts[j].ID) })

	sn.levelByID = make(map[uint]*types.Level, len(sn.Levels))
	for i := range sn.Levels {
		sn.levelByID[sn.Levels[i].ID] = &sn.Levels[i]
	}
	sn.gradeByID = make(map[uint]*types.Grade, len(sn.Grades))
	for i := range sn.Grades {
		sn.gradeByID[sn.Grades[i].ID] = &sn.Grades[i]
	}
	sn.unitByID = make(map[uint]*types.Unit, len(sn.Units))
	for i := range sn.Units {
		sn.unitByID[sn.Units[i].ID] = &sn.Units[i]
	}
	sn.subUnitByID = make(map[uint]*types.SubUnit, len(sn.SubUnits))
	for i := range sn.SubUnits {
		sn.subUnitByID[sn.SubUnits[i].ID] = &sn.SubUnits[i]
	}
	sn.conceptByID = make(map[uint]*types.Concept, len(sn.Concepts))
	for i := range sn.Concepts {
		sn.conceptByID[sn.Concepts[i].ID] = &sn.Concepts[i]
	}

	return sn
}

func lessByOrder(orderA int, idA uint, orderB int, idB uint) bool {
	if orderA != orderB {
		return orderA < orderB
	}
	return idA < idB
}

func (sn *Snapshot) Level(id uint) *types.Level     { return sn.levelByID[id] }
func (sn *Snapshot) Grade(id uint) *types.Grade     { return sn.gradeByID[id] }
func (sn *Snapshot) Unit(id uint) *types.Unit       { return sn.unitByID[id] }
func (sn *Snapshot) SubUnit(id uint) *types.SubUnit { return sn.subUnitByID[id] }
func (sn *Snapshot) Concept(id uint) *types.Concept { return sn.conceptByID[id] }

// ChildrenOf returns the ordered children of parentID at the given rank.
// A zero parent id yields an empty sequence: a cascading select must not
// offer unrelated options before its parent is chosen. RankLevel has no
// parent and always returns the full ordered level list.
func (sn *Snapshot) ChildrenOf(parentID uint, rank Rank) []Node {
	switch rank {
	case RankLevel:
		out := make([]Node, 0, len(sn.Levels))
		for _, l := range sn.Levels {
			out = append(out, Node{ID: l.ID, Name: l.Name, DisplayName: l.DisplayName, OrderIndex: l.OrderIndex})
		}
		return out
	case RankGrade:
		if parentID == 0 {
			return nil
		}
		var out []Node
		for _, g := range sn.Grades {
			if g.LevelID == parentID {
				out = append(out, Node{ID: g.ID, ParentID: g.LevelID, Name: g.Name, DisplayName: g.DisplayName, OrderIndex: g.OrderIndex})
			}
		}
		return out
	case RankUnit:
		if parentID == 0 {
			return nil
		}
		var out []Node
		for _, u := range sn.Units {
			if u.GradeID == parentID {
				out = append(out, Node{ID: u.ID, ParentID: u.GradeID, Name: u.Name, DisplayName: u.DisplayName, OrderIndex: u.OrderIndex})
			}
		}
		return out
	case RankSubUnit:
		if parentID == 0 {
			return nil
		}
		var out []Node
		for _, su := range sn.SubUnits {
			if su.UnitID == parentID {
				out = append(out, Node{ID: su.ID, ParentID: su.UnitID, Name: su.Name, DisplayName: su.DisplayName, OrderIndex: su.OrderIndex})
			}
		}
		return out
	case RankConcept:
		if parentID == 0 {
			return nil
		}
		var out []Node
		for _, c := range sn.Concepts {
			if c.SubUnitID != nil && *c.SubUnitID == parentID {
				out = append(out, Node{ID: c.ID, ParentID: *c.SubUnitID, Name: c.Name, DisplayName: c.DisplayName, OrderIndex: c.OrderIndex})
			}
		}
		return out
	}
	return nil
}

// AncestorsOf resolves the full parent chain of a concept. It never fails:
// a dangling foreign key simply leaves the rest of the chain nil.
func (sn *Snapshot) AncestorsOf(conceptID uint) Ancestors {
	c := sn.Concept(conceptID)
	if c == nil || c.SubUnitID == nil {
		return Ancestors{}
	}
	return sn.ChainFromSubUnit(*c.SubUnitID)
}

// ChainFromSubUnit resolves sub-unit → unit → grade → level.
func (sn *Snapshot) ChainFromSubUnit(subUnitID uint) Ancestors {
	var a Ancestors
	a.SubUnit = sn.SubUnit(subUnitID)
	if a.SubUnit == nil {
		return a
	}
	a.Unit = sn.Unit(a.SubUnit.UnitID)
	if a.Unit == nil {
		return a
	}
	a.Grade = sn.Grade(a.Unit.GradeID)
	if a.Grade == nil {
		return a
	}
	a.Level = sn.Level(a.Grade.LevelID)
	return a
}
