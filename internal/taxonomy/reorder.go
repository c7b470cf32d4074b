package taxonomy

// Direction of a sibling reorder.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

func ParseDirection(raw string) (Direction, bool) {
	switch raw {
	case "up":
		return MoveUp, true
	case "down":
		return MoveDown, true
	}
	return 0, false
}

// PlanReorder finds the neighbor to swap order indexes with. Siblings must
// already be in display order. Moving past either edge is a silent no-op:
// ok is false and nothing should be persisted.
func PlanReorder(siblings []Node, id uint, dir Direction) (current Node, neighbor Node, ok bool) {
	idx := -1
	for i, n := range siblings {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Node{}, Node{}, false
	}

	switch dir {
	case MoveUp:
		if idx == 0 {
			return Node{}, Node{}, false
		}
		return siblings[idx], siblings[idx-1], true
	case MoveDown:
		if idx == len(siblings)-1 {
			return Node{}, Node{}, false
		}
		return siblings[idx], siblings[idx+1], true
	}
	return Node{}, Node{}, false
}
