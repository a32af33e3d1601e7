package astcore

import "testing"

func TestCountNodes(t *testing.T) {
	if CountNodes(nil) != 0 {
		t.Fatalf("CountNodes(nil) should be 0")
	}
	tree := tn("r", tn("a"), tn("b", tn("c")))
	if got := CountNodes(tree); got != 4 {
		t.Fatalf("CountNodes() = %d, want 4", got)
	}
}

func TestComputeStatsInsertScenario(t *testing.T) {
	a, b := tn("a"), tn("b")
	left := tn("S", a, b)
	ap, bp, c := tn("a"), tn("b"), tn("c")
	right := tn("S", ap, bp, c)

	m := TopDown(left, right)
	s := ComputeStats(left, right, m, nil)

	if s.Left != 3 || s.Right != 4 {
		t.Fatalf("Left/Right = %d/%d, want 3/4", s.Left, s.Right)
	}
	if s.Mapped != 3 {
		t.Fatalf("Mapped = %d, want 3", s.Mapped)
	}
	if s.Inserted != 1 {
		t.Fatalf("Inserted = %d, want 1", s.Inserted)
	}
	if s.Deleted != 0 || s.Replaced != 0 {
		t.Fatalf("expected no deletes/replaces")
	}
	if got := s.NodeChange(); got != 1 {
		t.Fatalf("NodeChange() = %d, want 1", got)
	}
	if pct := s.PctChanged(); pct <= 0 {
		t.Fatalf("PctChanged() should be positive when something changed, got %f", pct)
	}
}

func TestPctChangedZeroOnIdenticalTrees(t *testing.T) {
	left := tn("S", tn("a"))
	right := tn("S", tn("a"))
	m := TopDown(left, right)
	s := ComputeStats(left, right, m, nil)
	if s.PctChanged() != 0 {
		t.Fatalf("PctChanged() = %f, want 0 for identical trees", s.PctChanged())
	}
}

func TestPctChangedEmptyTrees(t *testing.T) {
	var s Stats
	if s.PctChanged() != 0 {
		t.Fatalf("PctChanged() on a zero Stats should be 0, not divide by zero")
	}
}
