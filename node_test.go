package astcore

import "testing"

func TestNodeAccessors(t *testing.T) {
	child := tn("c")
	root := tn("r", child)

	if root.Data() != "r" {
		t.Fatalf("Data() = %q, want %q", root.Data(), "r")
	}
	if len(root.Children()) != 1 || root.Children()[0] != child {
		t.Fatalf("Children() did not return the same child reference")
	}
	if root.Type() != testType {
		t.Fatalf("Type() = %v, want testType", root.Type())
	}
	if !root.Fragment().IsEmpty() {
		t.Fatalf("Fragment() should default to empty")
	}
}

func TestDummyNode(t *testing.T) {
	d := DummyNode()
	if !IsDummy(d) {
		t.Fatalf("IsDummy(DummyNode()) = false")
	}
	if IsDummy(tn("x")) {
		t.Fatalf("IsDummy(ordinary node) = true")
	}
	if len(d.Children()) != 0 {
		t.Fatalf("dummy node should have no children")
	}
}

func TestDeepCompare(t *testing.T) {
	a := tn("r", tn("a"), tn("b"))
	b := tn("r", tn("a"), tn("b"))
	c := tn("r", tn("a"), tn("x"))

	if !DeepCompare(a, b) {
		t.Fatalf("DeepCompare should treat independently-built identical trees as equal")
	}
	if DeepCompare(a, c) {
		t.Fatalf("DeepCompare should distinguish differing descendants")
	}
	if a == b {
		t.Fatalf("independently built nodes should not be reference-equal")
	}
	if !DeepCompare(nil, nil) {
		t.Fatalf("DeepCompare(nil, nil) should be true")
	}
	if DeepCompare(a, nil) {
		t.Fatalf("DeepCompare(a, nil) should be false")
	}
}

func TestDeepCompareDifferentTypes(t *testing.T) {
	other := namedType("Other")
	a := tn("x")
	b := ntn(other, "x")
	if DeepCompare(a, b) {
		t.Fatalf("nodes of different types with the same data should not DeepCompare equal")
	}
}
