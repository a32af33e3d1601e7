package astcore

import "testing"

func TestBelongsToGroup(t *testing.T) {
	base := NewType("Expression", nil, nil, nil, nil)
	_ = base
	leaf := NewType("Literal", nil, []string{"Expression"}, nil, nil)

	if !leaf.BelongsToGroup("Literal") {
		t.Fatalf("a type should belong to its own name")
	}
	if !leaf.BelongsToGroup("Expression") {
		t.Fatalf("a type should belong to a named ancestor group")
	}
	if leaf.BelongsToGroup("Statement") {
		t.Fatalf("a type should not belong to an unrelated group")
	}
	if !leaf.BelongsToGroup("") {
		t.Fatalf("every type belongs to the wildcard group")
	}
}

func TestTypeBuildRejectsArity(t *testing.T) {
	var strict *Type
	strict = NewType("Pair", []ChildDescriptor{{Type: "T"}, {Type: "T"}}, nil, nil,
		func(cfg Config) (Node, error) { return NewBuiltNode(strict, cfg), nil })

	_, err := strict.Build(Config{Children: []Node{tn("a")}})
	if err == nil {
		t.Fatalf("expected an error building Pair with one child")
	}

	n, err := strict.Build(Config{Children: []Node{tn("a"), tn("b")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Type() != strict {
		t.Fatalf("Build should produce a node of the requesting type")
	}
}

func TestTypeBuildRejectsWrongChildType(t *testing.T) {
	other := namedType("Other")
	var strict *Type
	strict = NewType("Only", []ChildDescriptor{{Type: "T"}}, nil, nil,
		func(cfg Config) (Node, error) { return NewBuiltNode(strict, cfg), nil })

	_, err := strict.Build(Config{Children: []Node{ntn(other, "x")}})
	if err == nil {
		t.Fatalf("expected an error building Only with a mismatched child type")
	}
}

func TestTypeBuildOptionalChild(t *testing.T) {
	var opt *Type
	opt = NewType("Maybe", []ChildDescriptor{{Type: "T", Optional: true}}, nil, nil,
		func(cfg Config) (Node, error) { return NewBuiltNode(opt, cfg), nil })

	n, err := opt.Build(Config{})
	if err != nil {
		t.Fatalf("unexpected error building with an omitted optional child: %v", err)
	}
	if len(n.Children()) != 0 {
		t.Fatalf("expected zero children, got %d", len(n.Children()))
	}
}

func TestTypeNilBuilderYieldsDummy(t *testing.T) {
	nobuilder := NewType("NoBuilder", nil, nil, nil, nil)
	n, err := nobuilder.Build(Config{})
	if err == nil {
		t.Fatalf("expected an error building a type with no builder")
	}
	if !IsDummy(n) {
		t.Fatalf("expected the dummy node on builder rejection")
	}
}

func TestMustBuildNeverPanics(t *testing.T) {
	nobuilder := NewType("NoBuilder2", nil, nil, nil, nil)
	n := nobuilder.MustBuild(Config{})
	if !IsDummy(n) {
		t.Fatalf("MustBuild should fall back to the dummy node on rejection")
	}
}

func TestTypeProperties(t *testing.T) {
	typ := NewType("Colored", nil, nil, map[string]string{"color": "red"}, nil)
	v, ok := typ.Property("color")
	if !ok || v != "red" {
		t.Fatalf("Property(\"color\") = %q, %v, want \"red\", true", v, ok)
	}
	if _, ok := typ.Property("missing"); ok {
		t.Fatalf("Property(\"missing\") should report false")
	}
	props := typ.Properties()
	props["color"] = "blue"
	if v, _ := typ.Property("color"); v != "red" {
		t.Fatalf("Properties() should return a defensive copy")
	}
}
