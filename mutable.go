package astcore

// MutableNode is a scoped, single-use editor wrapped around an immutable
// prototype node. It allows child substitution and then Rebuild()s a fresh
// immutable tree via the prototype's Type.Builder. DiffTreeBuilder does not
// use it (its projections build through Type.MustBuild directly); it is
// exported for Adapter-style external transformations that need to rewrite a tree in place before discarding
// the editor. A MutableNode must not outlive the edit it was created for,
// and is not safe for concurrent use.
type MutableNode struct {
	prototype    Node
	children     []Node
	parent       *MutableNode // weak: navigation only, confers no ownership
	dataOverride *string
}

// NewMutableNode wraps prototype for editing. The wrapped children start
// out as the prototype's own children; call Child(i) and wrap a returned
// child in its own MutableNode to edit further down before calling
// ReplaceChild here.
func NewMutableNode(prototype Node) *MutableNode {
	children := make([]Node, len(prototype.Children()))
	copy(children, prototype.Children())
	m := &MutableNode{prototype: prototype, children: children}
	for _, ch := range children {
		if mc, ok := ch.(*MutableNode); ok {
			mc.parent = m
		}
	}
	return m
}

// Prototype returns the original immutable node this editor wraps.
func (m *MutableNode) Prototype() Node { return m.prototype }

// Parent returns the editor's parent editor, or nil at the edit's root.
func (m *MutableNode) Parent() *MutableNode { return m.parent }

// Children returns the current (possibly edited) child list.
func (m *MutableNode) Children() []Node { return m.children }

// Type satisfies Node by forwarding to the prototype.
func (m *MutableNode) Type() *Type { return m.prototype.Type() }

// Data satisfies Node by forwarding to the prototype; SetData edits it.
func (m *MutableNode) Data() string { return m.data() }

// Fragment satisfies Node by forwarding to the prototype.
func (m *MutableNode) Fragment() Fragment { return m.prototype.Fragment() }

func (m *MutableNode) data() string {
	if m.dataOverride != nil {
		return *m.dataOverride
	}
	return m.prototype.Data()
}

// SetData overrides the data this editor rebuilds with.
func (m *MutableNode) SetData(data string) {
	m.dataOverride = &data
}

// ReplaceChild substitutes before with after in this editor's child list,
// matching by reference identity or, if before is itself being edited
// elsewhere, by prototype identity. It reports whether a match was found.
func (m *MutableNode) ReplaceChild(before, after Node) bool {
	for i, ch := range m.children {
		if sameNode(ch, before) {
			m.children[i] = after
			return true
		}
	}
	return false
}

func sameNode(a, b Node) bool {
	if a == b {
		return true
	}
	if ma, ok := a.(*MutableNode); ok {
		if ma.prototype == b {
			return true
		}
	}
	if mb, ok := b.(*MutableNode); ok {
		if mb.prototype == a {
			return true
		}
	}
	return false
}

// Rebuild re-materializes an immutable tree from this editor's current
// state, recursing into any child MutableNodes first. If the prototype's
// Type rejects the rebuilt Config, Rebuild returns the dummy node, per
// astcore's error taxonomy - it never panics.
func (m *MutableNode) Rebuild() Node {
	children := make([]Node, len(m.children))
	for i, ch := range m.children {
		if mc, ok := ch.(*MutableNode); ok {
			children[i] = mc.Rebuild()
		} else {
			children[i] = ch
		}
	}
	return m.Type().MustBuild(Config{
		Fragment: m.Fragment(),
		Data:     m.data(),
		Children: children,
	})
}
