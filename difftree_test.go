package astcore

import "testing"

func TestBuildDiffTreeNoChange(t *testing.T) {
	b, c := tn("B"), tn("C")
	left := tn("A", b, c)
	bp, cp := tn("B"), tn("C")
	right := tn("A", bp, cp)

	m := TopDown(left, right)
	item := BuildDiffTree(left, right, m)

	dn, ok := item.(*DiffNode)
	if !ok {
		t.Fatalf("expected a *DiffNode at the root, got %T", item)
	}
	if dn.Kind() != ItemNode {
		t.Fatalf("Kind() = %v, want ItemNode", dn.Kind())
	}
	if !DeepCompare(dn.Before(), left) {
		t.Fatalf("Before() should reconstruct the left tree")
	}
	if !DeepCompare(dn.After(), right) {
		t.Fatalf("After() should reconstruct the right tree")
	}
	items := dn.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 child items, got %d", len(items))
	}
	for _, it := range items {
		if it.Kind() != ItemNode {
			t.Fatalf("expected every child to be a nested DiffNode in the no-change case")
		}
	}
}

func TestBuildDiffTreeInsert(t *testing.T) {
	a, b := tn("a"), tn("b")
	left := tn("S", a, b)
	ap, bp, c := tn("a"), tn("b"), tn("c")
	right := tn("S", ap, bp, c)

	m := TopDown(left, right)
	dn := BuildDiffTree(left, right, m).(*DiffNode)

	items := dn.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items (2 kept + 1 inserted), got %d", len(items))
	}
	last := items[2]
	if last.Kind() != ItemInsert {
		t.Fatalf("expected the trailing item to be an Insert, got %v", last.Kind())
	}
	if last.After() != c {
		t.Fatalf("Insert's After() should be the inserted node c")
	}
	if !DeepCompare(dn.After(), right) {
		t.Fatalf("After() should reconstruct the right tree including the insert")
	}
}

func TestBuildDiffTreeDelete(t *testing.T) {
	a, b, c := tn("a"), tn("b"), tn("c")
	left := tn("S", a, b, c)
	ap, bp := tn("a"), tn("b")
	right := tn("S", ap, bp)

	m := TopDown(left, right)
	dn := BuildDiffTree(left, right, m).(*DiffNode)

	items := dn.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items (2 kept + 1 delete), got %d", len(items))
	}
	last := items[2]
	if last.Kind() != ItemDelete {
		t.Fatalf("expected the trailing item to be a Delete, got %v", last.Kind())
	}
	if last.Before() != c {
		t.Fatalf("Delete's Before() should be the deleted node c")
	}
	if !DeepCompare(dn.Before(), left) {
		t.Fatalf("Before() should reconstruct the left tree including the delete")
	}
}

func TestBuildDiffTreeRootReplace(t *testing.T) {
	xType := namedType("X")
	yType := namedType("Y")
	a := tn("a")
	left := ntn(xType, "", a)
	ap := tn("a")
	right := ntn(yType, "", ap)

	m := TopDown(left, right)
	item := BuildDiffTree(left, right, m)

	rep, ok := item.(*Replace)
	if !ok {
		t.Fatalf("expected a *Replace at the root, got %T", item)
	}
	if rep.Before() != left || rep.After() != right {
		t.Fatalf("Replace should wrap the swallowed whole before/after subtrees")
	}
}

func TestBuildDiffTreeWholesaleInsertAndDelete(t *testing.T) {
	right := tn("R")
	m := TopDown(nil, right)
	item := BuildDiffTree(nil, right, m)
	if ins, ok := item.(*Insert); !ok || ins.Inserted() != right {
		t.Fatalf("expected a wholesale Insert of right, got %T", item)
	}

	left := tn("L")
	m2 := TopDown(left, nil)
	item2 := BuildDiffTree(left, nil, m2)
	if del, ok := item2.(*Delete); !ok || del.Deleted() != left {
		t.Fatalf("expected a wholesale Delete of left, got %T", item2)
	}
}

func TestBuildDiffTreeBothNil(t *testing.T) {
	if item := BuildDiffTree(nil, nil, TopDown(nil, nil)); item != nil {
		t.Fatalf("expected nil DiffItem for (nil, nil), got %v", item)
	}
}
