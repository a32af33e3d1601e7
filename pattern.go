package astcore

import "fmt"

// PatternNode is one fixed (non-wildcard) position in a Pattern: a type, a
// datum, and an ordered child list whose elements are themselves
// PatternNodes, Holes, or ordinary concrete Nodes (a pattern may pin a
// literal subtree alongside its wildcards).
type PatternNode struct {
	typ      *Type
	data     string
	children []Node
	fragment Fragment
}

// NewPatternNode constructs a fixed pattern position.
func NewPatternNode(typ *Type, data string, children []Node) *PatternNode {
	return &PatternNode{typ: typ, data: data, children: children, fragment: EmptyFragment()}
}

func (p *PatternNode) Type() *Type        { return p.typ }
func (p *PatternNode) Data() string       { return p.data }
func (p *PatternNode) Children() []Node   { return p.children }
func (p *PatternNode) Fragment() Fragment { return p.fragment }

// Pattern is a DiffTree-shaped template: a tree of PatternNodes and Holes
// that can be matched against a concrete Node (binding each hole to the
// subtree it covers) or, given a complete set of bindings, rebuilt into a
// concrete Node via Apply.
type Pattern struct {
	root Node
}

// NewPattern wraps root (a *PatternNode, a *Hole, or any Node) as a
// pattern.
func NewPattern(root Node) *Pattern {
	return &Pattern{root: root}
}

// Match attempts to unify the pattern against candidate, returning the
// hole bindings discovered and whether the whole pattern matched. A
// partial match (some holes bound, overall failure) reports false and a
// nil map - callers never see incomplete bindings.
func (p *Pattern) Match(candidate Node) (map[int]Node, bool) {
	bindings := make(map[int]Node)
	if matchNode(p.root, candidate, bindings) {
		return bindings, true
	}
	return nil, false
}

func matchNode(pat, cand Node, bindings map[int]Node) bool {
	if hole, ok := pat.(*Hole); ok {
		if cand == nil {
			return false
		}
		if hole.constraint != "" && !cand.Type().BelongsToGroup(hole.constraint) {
			return false
		}
		if existing, bound := bindings[hole.id]; bound {
			return DeepCompare(existing, cand)
		}
		bindings[hole.id] = cand
		return true
	}
	if cand == nil || pat == nil {
		return cand == pat
	}
	if pat.Type().Name() != cand.Type().Name() || pat.Data() != cand.Data() {
		return false
	}
	pc, cc := pat.Children(), cand.Children()
	if len(pc) != len(cc) {
		return false
	}
	for i := range pc {
		if !matchNode(pc[i], cc[i], bindings) {
			return false
		}
	}
	return true
}

// Apply rebuilds a concrete Node from the pattern, substituting each
// Hole's binding in for it. It errors if a hole in the pattern has no
// entry in bindings, or if a substituted position fails its enclosing
// Type's validation.
func (p *Pattern) Apply(bindings map[int]Node) (Node, error) {
	return applyNode(p.root, bindings)
}

func applyNode(n Node, bindings map[int]Node) (Node, error) {
	if hole, ok := n.(*Hole); ok {
		bound, ok := bindings[hole.id]
		if !ok {
			return nil, fmt.Errorf("astcore: pattern hole #%d has no binding", hole.id)
		}
		return bound, nil
	}
	children := make([]Node, 0, len(n.Children()))
	for _, c := range n.Children() {
		built, err := applyNode(c, bindings)
		if err != nil {
			return nil, err
		}
		children = append(children, built)
	}
	return n.Type().Build(Config{Data: n.Data(), Fragment: n.Fragment(), Children: children})
}

// PatternTemplate is a convenience fluent helper for hand-assembling a
// Pattern from scratch (as opposed to deriving one from a DiffTree via
// PatternBuilder below): it hands out fresh, sequential hole ids so
// callers don't have to track them by hand.
type PatternTemplate struct {
	nextHoleID int
}

// NewPatternTemplate constructs an empty template.
func NewPatternTemplate() *PatternTemplate {
	return &PatternTemplate{}
}

// MakeHole allocates a new hole with the given type constraint.
func (t *PatternTemplate) MakeHole(constraint string) *Hole {
	t.nextHoleID++
	return NewHole(t.nextHoleID, constraint)
}

// Node constructs a fixed pattern position.
func (t *PatternTemplate) Node(typ *Type, data string, children ...Node) *PatternNode {
	return NewPatternNode(typ, data, children)
}

// patternSlot is one position in a DiffTree as mirrored by a
// PatternBuilder: either the original DiffItem (further decomposed into
// child slots if it's a DiffNode) or, once MakeHole has fired on this
// position, the Hole that replaced it.
type patternSlot struct {
	item     DiffItem
	children []*patternSlot
	hole     *Hole
}

func newPatternSlot(item DiffItem) *patternSlot {
	slot := &patternSlot{item: item}
	if dn, ok := item.(*DiffNode); ok {
		for _, child := range dn.Items() {
			slot.children = append(slot.children, newPatternSlot(child))
		}
	}
	return slot
}

// prototypeOf returns the left-tree (pre-edit) node identity a DiffItem is
// keyed on, the same identity MakeHole matches against: a DiffNode's left
// prototype, or the single wrapped node of an Insert/Replace/Delete.
func prototypeOf(item DiffItem) Node {
	switch a := item.(type) {
	case *DiffNode:
		return a.left
	case *Insert:
		return a.Inserted()
	case *Replace:
		return a.Before()
	case *Delete:
		return a.Deleted()
	default:
		return nil
	}
}

// PatternBuilder mirrors a DiffTree as a Pattern whose items are
// PatternNodes, action nodes, or Holes - spec.md §4.8's
// PatternBuilder(DiffTree). MakeHole(node, number) locates the item whose
// prototype is node and replaces it in place with Hole(node.Type(),
// number); Build assembles the current state of the tree into a Pattern.
type PatternBuilder struct {
	root *patternSlot
}

// NewPatternBuilder wraps tree (typically the result of BuildDiffTree) for
// hole substitution.
func NewPatternBuilder(tree DiffItem) *PatternBuilder {
	return &PatternBuilder{root: newPatternSlot(tree)}
}

// MakeHole locates the DiffTree item whose prototype is proto (compared by
// identity) and replaces it in place with a hole of id number constrained
// to proto's type. It returns the created hole, or nil if no item in the
// tree has proto as its prototype.
func (b *PatternBuilder) MakeHole(proto Node, number int) *Hole {
	slot := findSlot(b.root, proto)
	if slot == nil {
		return nil
	}
	slot.hole = NewHole(number, proto.Type().Name())
	slot.children = nil
	return slot.hole
}

func findSlot(slot *patternSlot, proto Node) *patternSlot {
	if slot == nil || slot.hole != nil {
		return nil
	}
	if prototypeOf(slot.item) == proto {
		return slot
	}
	for _, c := range slot.children {
		if found := findSlot(c, proto); found != nil {
			return found
		}
	}
	return nil
}

// Build assembles the tree's current state - with every MakeHole
// substitution applied - into a Pattern ready for Match/Apply.
func (b *PatternBuilder) Build() *Pattern {
	return NewPattern(buildPatternTree(b.root))
}

func buildPatternTree(slot *patternSlot) Node {
	if slot.hole != nil {
		return slot.hole
	}
	if dn, ok := slot.item.(*DiffNode); ok {
		children := make([]Node, len(slot.children))
		for i, c := range slot.children {
			children[i] = buildPatternTree(c)
		}
		return NewPatternNode(dn.left.Type(), dn.left.Data(), children)
	}
	return slot.item.(Node)
}
