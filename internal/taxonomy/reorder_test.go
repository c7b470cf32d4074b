package taxonomy

import "testing"

func orderedSiblings() []Node {
	return []Node{
		{ID: 1, OrderIndex: 1},
		{ID: 2, OrderIndex: 2},
		{ID: 3, OrderIndex: 3},
	}
}

func TestPlanReorderUp(t *testing.T) {
	cur, nb, ok := PlanReorder(orderedSiblings(), 2, MoveUp)
	if !ok {
		t.Fatal("expected a swap")
	}
	if cur.ID != 2 || nb.ID != 1 {
		t.Errorf("expected swap of 2 and 1, got %d and %d", cur.ID, nb.ID)
	}
}

func TestPlanReorderDown(t *testing.T) {
	cur, nb, ok := PlanReorder(orderedSiblings(), 2, MoveDown)
	if !ok {
		t.Fatal("expected a swap")
	}
	if cur.ID != 2 || nb.ID != 3 {
		t.Errorf("expected swap of 2 and 3, got %d and %d", cur.ID, nb.ID)
	}
}

func TestPlanReorderEdgesAreNoOps(t *testing.T) {
	if _, _, ok := PlanReorder(orderedSiblings(), 1, MoveUp); ok {
		t.Error("first sibling moved up must be a no-op")
	}
	if _, _, ok := PlanReorder(orderedSiblings(), 3, MoveDown); ok {
		t.Error("last sibling moved down must be a no-op")
	}
}

func TestPlanReorderUnknownID(t *testing.T) {
	if _, _, ok := PlanReorder(orderedSiblings(), 99, MoveUp); ok {
		t.Error("unknown id must be a no-op")
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection("up"); !ok || d != MoveUp {
		t.Error("up should parse")
	}
	if d, ok := ParseDirection("down"); !ok || d != MoveDown {
		t.Error("down should parse")
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("unknown direction should not parse")
	}
}
