package taxonomy

// Selection holds the currently chosen id at each rank of a cascading
// select. Zero means "nothing chosen".
type Selection struct {
	LevelID   uint
	GradeID   uint
	UnitID    uint
	SubUnitID uint
	ConceptID uint
}

// Set records a choice at the given rank and clears every rank below it.
// Picking a new grade must drop the stale unit/sub-unit/concept choices, or
// the form ends up submitting children that no longer belong to their parent.
// Raw input is coerced once here; unparseable input clears the rank.
func (s *Selection) Set(rank Rank, raw string) {
	id, _ := ParseID(raw)
	s.SetID(rank, id)
}

// SetID is Set for callers that already hold a canonical id.
func (s *Selection) SetID(rank Rank, id uint) {
	switch rank {
	case RankLevel:
		s.LevelID = id
	case RankGrade:
		s.GradeID = id
	case RankUnit:
		s.UnitID = id
	case RankSubUnit:
		s.SubUnitID = id
	case RankConcept:
		s.ConceptID = id
	}
	s.clearBelow(rank)
}

// At returns the selected id at a rank.
func (s *Selection) At(rank Rank) uint {
	switch rank {
	case RankLevel:
		return s.LevelID
	case RankGrade:
		return s.GradeID
	case RankUnit:
		return s.UnitID
	case RankSubUnit:
		return s.SubUnitID
	case RankConcept:
		return s.ConceptID
	}
	return 0
}

func (s *Selection) clearBelow(rank Rank) {
	if rank < RankGrade {
		s.GradeID = 0
	}
	if rank < RankUnit {
		s.UnitID = 0
	}
	if rank < RankSubUnit {
		s.SubUnitID = 0
	}
	if rank < RankConcept {
		s.ConceptID = 0
	}
}

// Options returns the valid choices at a rank given the current selection,
// i.e. the children of whatever is chosen one rank up.
func (s *Selection) Options(sn *Snapshot, rank Rank) []Node {
	switch rank {
	case RankLevel:
		return sn.ChildrenOf(0, RankLevel)
	case RankGrade:
		return sn.ChildrenOf(s.LevelID, RankGrade)
	case RankUnit:
		return sn.ChildrenOf(s.GradeID, RankUnit)
	case RankSubUnit:
		return sn.ChildrenOf(s.UnitID, RankSubUnit)
	case RankConcept:
		return sn.ChildrenOf(s.SubUnitID, RankConcept)
	}
	return nil
}
