package astcore

import "testing"

func TestBuildExtIndexNavigation(t *testing.T) {
	a, b, c := tn("a"), tn("b"), tn("c")
	root := tn("r", a, b, c)

	_, rootExt := BuildExtIndex(root)

	if rootExt.Proto() != root {
		t.Fatalf("root ExtNode's Proto() should be the root prototype")
	}
	if _, ok := rootExt.Parent(); ok {
		t.Fatalf("root should have no parent")
	}

	kids := rootExt.Children()
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}
	for i, want := range []Node{a, b, c} {
		if kids[i].Proto() != want {
			t.Fatalf("child %d proto mismatch", i)
		}
		if kids[i].ChildIndex() != i {
			t.Fatalf("child %d ChildIndex() = %d, want %d", i, kids[i].ChildIndex(), i)
		}
		p, ok := kids[i].Parent()
		if !ok || p.Proto() != root {
			t.Fatalf("child %d parent should resolve back to root", i)
		}
	}

	if _, ok := kids[0].Left(); ok {
		t.Fatalf("first child should have no left sibling")
	}
	if _, ok := kids[2].Right(); ok {
		t.Fatalf("last child should have no right sibling")
	}
	mid, ok := kids[1].Left()
	if !ok || mid.Proto() != a {
		t.Fatalf("middle child's left sibling should be the first child")
	}
	mid, ok = kids[1].Right()
	if !ok || mid.Proto() != c {
		t.Fatalf("middle child's right sibling should be the last child")
	}
}

func TestExtNodeValidAndZero(t *testing.T) {
	var zero ExtNode
	if zero.Valid() {
		t.Fatalf("the zero ExtNode should not be valid")
	}

	_, root := BuildExtIndex(tn("r"))
	if !root.Valid() {
		t.Fatalf("a built ExtNode should be valid")
	}
}

func TestExtIndexHashesMatchHasher(t *testing.T) {
	root := tn("r", tn("a"), tn("b"))
	idx, rootExt := BuildExtIndex(root)
	_ = idx

	if rootExt.AbsoluteHash() != AbsoluteHash(root) {
		t.Fatalf("ExtNode.AbsoluteHash() should match the standalone AbsoluteHash")
	}
	if rootExt.LocalHash() != LocalHash(root) {
		t.Fatalf("ExtNode.LocalHash() should match the standalone LocalHash")
	}
}
