package astcore

import "fmt"

// ChildDescriptor constrains one position in a Type's child list: the
// expected child Type name (matched via BelongsToGroup, so a supertype
// group name is enough) and whether the position may be omitted.
type ChildDescriptor struct {
	Type     string
	Optional bool
}

// Config carries everything a Builder needs to construct a Node: the
// source span (optional), the textual datum (optional) and the ordered
// children. It replaces the setter-returning-bool builder style with an
// explicit record a validating constructor consumes in one call.
type Config struct {
	Fragment Fragment
	Data     string
	Children []Node
}

// BuildError reports why a Type rejected a Config. It is never a panic:
// builder rejection is routine, expected input, not a programmer bug - see
// astcore's error taxonomy.
type BuildError struct {
	TypeName string
	Reason   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("astcore: cannot build %s node: %s", e.TypeName, e.Reason)
}

// Builder validates a Config against its Type's constraints and produces a
// Node, or an error describing why the Config was rejected.
type Builder func(cfg Config) (Node, error)

// Type describes one node kind: its name, the shape of its children, the
// ancestor type-group names it belongs to (hierarchy), and an optional
// property bag (color, language, ...). A Type with a nil Children
// descriptor list places no constraint on arity - draft and language nodes
// that haven't been schema-checked use this.
type Type struct {
	name       string
	children   []ChildDescriptor
	hierarchy  []string
	properties map[string]string
	builder    Builder
}

// NewType constructs a Type. builder may be nil, in which case Build always
// returns a dummy node - useful for types that exist only as matching
// targets (e.g. Hole types) and are never directly constructed.
func NewType(name string, children []ChildDescriptor, hierarchy []string, properties map[string]string, builder Builder) *Type {
	return &Type{
		name:       name,
		children:   children,
		hierarchy:  hierarchy,
		properties: properties,
		builder:    builder,
	}
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// ChildDescriptors returns the constraints on this type's children, or nil
// if arity is unconstrained.
func (t *Type) ChildDescriptors() []ChildDescriptor { return t.children }

// Hierarchy returns the inclusive list of ancestor type-group names.
func (t *Type) Hierarchy() []string { return t.hierarchy }

// BelongsToGroup reports whether this type is, or descends from, the named
// group. Every type belongs to its own name and, conventionally, the
// wildcard group "".
func (t *Type) BelongsToGroup(group string) bool {
	if group == "" || group == t.name {
		return true
	}
	for _, g := range t.hierarchy {
		if g == group {
			return true
		}
	}
	return false
}

// Property looks up a property by key.
func (t *Type) Property(key string) (string, bool) {
	v, ok := t.properties[key]
	return v, ok
}

// Build validates cfg and, on success, constructs a Node of this type. On
// rejection it returns a dummy node alongside the error describing why, per
// spec: builder rejection never surfaces as a panic.
func (t *Type) Build(cfg Config) (Node, error) {
	if err := t.validate(cfg); err != nil {
		return DummyNode(), err
	}
	if t.builder == nil {
		return DummyNode(), &BuildError{TypeName: t.name, Reason: "type has no builder"}
	}
	return t.builder(cfg)
}

// MustBuild builds a Config into a Node, discarding any rejection and
// returning the dummy node in its place. Callers that only care about the
// "never an exception" half of the contract use this instead of Build.
func (t *Type) MustBuild(cfg Config) Node {
	n, _ := t.Build(cfg)
	return n
}

func (t *Type) validate(cfg Config) error {
	if t.children == nil {
		return nil
	}
	i := 0
	for _, want := range t.children {
		if i >= len(cfg.Children) {
			if want.Optional {
				continue
			}
			return fmt.Errorf("astcore: %s: missing required child of type %q at position %d", t.name, want.Type, i)
		}
		got := cfg.Children[i]
		if !got.Type().BelongsToGroup(want.Type) {
			if want.Optional {
				continue
			}
			return fmt.Errorf("astcore: %s: child %d: want type %q, got %q", t.name, i, want.Type, got.Type().Name())
		}
		i++
	}
	if i != len(cfg.Children) {
		return fmt.Errorf("astcore: %s: expects %d children, got %d", t.name, len(t.children), len(cfg.Children))
	}
	return nil
}
