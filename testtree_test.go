package astcore

// Test helpers shared across this package's test files: a minimal,
// permissive node kind ("T") with unconstrained children, enough to build
// arbitrary sample trees without a real language's type catalog.

var testType = namedType("T")

// tn builds a test node of type "T" with the given data and children.
func tn(data string, children ...Node) Node {
	n, err := testType.Build(Config{Data: data, Children: children})
	if err != nil {
		panic(err)
	}
	return n
}

// namedType returns a distinct Type by name, for tests that need to tell
// two node kinds apart (e.g. a wholesale retype).
func namedType(name string) *Type {
	var t *Type
	t = NewType(name, nil, nil, nil, func(cfg Config) (Node, error) {
		return NewBuiltNode(t, cfg), nil
	})
	return t
}

// ntn builds a node of a named type.
func ntn(typ *Type, data string, children ...Node) Node {
	n, err := typ.Build(Config{Data: data, Children: children})
	if err != nil {
		panic(err)
	}
	return n
}
