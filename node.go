package astcore

// Node is the capability set every tree participant in astcore implements:
// the prototype AST node, action nodes (Insert/Replace/Delete), DiffNode,
// PatternNode, Hole and MutableNode. Equality between two Node values is
// reference identity; DeepCompare answers structural equivalence instead.
type Node interface {
	Type() *Type
	Data() string
	Children() []Node
	Fragment() Fragment
}

// node is the immutable, reference-identity AST node produced by a
// Type's Builder. It is never mutated after construction; MutableNode is
// the scoped editor that produces a fresh node instead.
type node struct {
	typ      *Type
	data     string
	children []Node
	fragment Fragment
}

// NewBuiltNode constructs the immutable node backing an already-validated
// Config. It is the function every Type's Builder ultimately calls; it
// performs no validation of its own; the Type.Build caller already did.
// A Config whose Fragment is left as the zero value gets the empty fragment.
func NewBuiltNode(typ *Type, cfg Config) Node {
	children := make([]Node, len(cfg.Children))
	copy(children, cfg.Children)
	fragment := cfg.Fragment
	if fragment == (Fragment{}) {
		fragment = emptyFragment
	}
	return &node{typ: typ, data: cfg.Data, children: children, fragment: fragment}
}

func (n *node) Type() *Type        { return n.typ }
func (n *node) Data() string       { return n.data }
func (n *node) Children() []Node   { return n.children }
func (n *node) Fragment() Fragment { return n.fragment }

// Properties returns a copy of the type's property map, convenience for
// callers that don't want to hold onto the Type.
func (t *Type) Properties() map[string]string {
	out := make(map[string]string, len(t.properties))
	for k, v := range t.properties {
		out[k] = v
	}
	return out
}

// dummyType is the type of the sentinel node returned whenever a Builder
// rejects a Config. It has no builder of its own - attempting to build a
// dummyType node always yields another dummy, never a panic.
var dummyType = NewType("Dummy", nil, nil, nil, nil)

// DummyNode returns the sentinel node astcore substitutes whenever a
// Builder rejects its input. Callers that observe it treat it as a local
// fallback, per astcore's error taxonomy - it is structurally a childless,
// dataless node of type "Dummy".
func DummyNode() Node {
	return &node{typ: dummyType, fragment: EmptyFragment()}
}

// IsDummy reports whether n is (structurally) the dummy sentinel.
func IsDummy(n Node) bool {
	return n != nil && n.Type() == dummyType
}

// DeepCompare reports structural equivalence: same type name, same data,
// same type properties, and recursively equal children in order. Unlike Go
// equality on Node values (reference identity), DeepCompare treats two
// independently-built subtrees with identical content as equal.
func DeepCompare(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type().Name() != b.Type().Name() {
		return false
	}
	if a.Data() != b.Data() {
		return false
	}
	if !propertiesEqual(a.Type().properties, b.Type().properties) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !DeepCompare(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func propertiesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
