package astcore

import "testing"

func extChildren(root Node) []ExtNode {
	_, r := BuildExtIndex(root)
	return r.Children()
}

func TestSectionRemoveNodeLeading(t *testing.T) {
	root := tn("r", tn("a"), tn("b"), tn("c"))
	kids := extChildren(root)
	s := NewSection(kids, nil)

	s.removeNode(kids[0])
	if len(s.Left) != 2 {
		t.Fatalf("expected 2 remaining left elements, got %d", len(s.Left))
	}
	if s.Previous.Proto() != kids[0].Proto() {
		t.Fatalf("removing the leading element should advance Previous to it")
	}
}

func TestSectionRemoveNodeMiddleKeepsPrevious(t *testing.T) {
	root := tn("r", tn("a"), tn("b"), tn("c"))
	kids := extChildren(root)
	s := NewSection(kids, nil)

	s.removeNode(kids[1])
	if len(s.Left) != 2 {
		t.Fatalf("expected 2 remaining left elements, got %d", len(s.Left))
	}
	if s.Previous.Valid() {
		t.Fatalf("removing a non-leading element should not set Previous")
	}
}

func TestSectionRemoveNodesSplitsSection(t *testing.T) {
	left := tn("r", tn("a"), tn("b"), tn("c"), tn("d"))
	right := tn("r", tn("a"), tn("x"), tn("c"), tn("d"))
	lk := extChildren(left)
	rk := extChildren(right)

	s := NewSection(lk, rk)
	pre, post := s.removeNodes(lk[1], rk[2])

	if pre == nil || len(pre.Left) != 1 || pre.Left[0].Proto() != lk[0].Proto() {
		t.Fatalf("pre section should contain just the first left element")
	}
	if pre.Previous.Valid() {
		t.Fatalf("pre section should inherit the original (invalid) Previous")
	}
	if post == nil || len(post.Left) != 2 {
		t.Fatalf("post section should contain the two trailing left elements")
	}
	if post.Previous.Proto() != lk[1].Proto() {
		t.Fatalf("post section's Previous should be the matched left element")
	}
}

func TestSectionRemoveNodesEmptyResults(t *testing.T) {
	root := tn("r", tn("a"))
	lk := extChildren(root)
	rk := extChildren(root)
	s := NewSection(lk, rk)

	pre, post := s.removeNodes(lk[0], rk[0])
	if pre != nil || post != nil {
		t.Fatalf("removing the only element on both sides should yield nil,nil")
	}
}

func TestSectionFlags(t *testing.T) {
	s := &Section{}
	if s.hasFlag(flagNoIdentical) || s.hasFlag(flagNoSimilar) {
		t.Fatalf("a fresh section should have no flags set")
	}
	s.setFlag(flagNoIdentical)
	if !s.hasFlag(flagNoIdentical) {
		t.Fatalf("setFlag should be observable via hasFlag")
	}
	if s.hasFlag(flagNoSimilar) {
		t.Fatalf("setting one flag should not set the other")
	}
}
