package astcore

// DiffNode overlays a Mapping onto one matched (left, right) pair: it wraps
// the two mapped prototypes plus an ordered list of DiffItems - one per
// child slot, each either a nested DiffNode (unchanged structure, recurse)
// or an Insert/Replace/Delete action. DiffNode itself satisfies both Node
// (so a DiffTree is traversable like any other tree) and DiffItem (so it
// can be nested inside an enclosing DiffNode's item list).
type DiffNode struct {
	left, right Node
	items       []DiffItem
}

// NewDiffNode constructs a DiffNode over a mapped pair and its item list.
// Callers normally get a DiffNode from BuildDiffTree rather than calling
// this directly.
func NewDiffNode(left, right Node, items []DiffItem) *DiffNode {
	return &DiffNode{left: left, right: right, items: items}
}

func (d *DiffNode) Kind() DiffItemKind { return ItemNode }

func (d *DiffNode) Type() *Type        { return d.left.Type() }
func (d *DiffNode) Data() string       { return d.left.Data() }
func (d *DiffNode) Fragment() Fragment { return d.left.Fragment() }

// Children projects the item list as plain Nodes: a nested DiffNode
// contributes itself, an action item contributes the action node.
func (d *DiffNode) Children() []Node {
	out := make([]Node, len(d.items))
	for i, it := range d.items {
		out[i] = it.(Node)
	}
	return out
}

// Items returns a copy of this DiffNode's ordered child-item list.
func (d *DiffNode) Items() []DiffItem {
	out := make([]DiffItem, len(d.items))
	copy(out, d.items)
	return out
}

// Before rebuilds the pre-edit subtree rooted at this DiffNode, via the
// left prototype's own Type.Builder - dropping every item whose Before()
// is nil (Inserts contribute nothing to Before).
func (d *DiffNode) Before() Node {
	children := make([]Node, 0, len(d.items))
	for _, it := range d.items {
		if b := it.Before(); b != nil {
			children = append(children, b)
		}
	}
	return d.left.Type().MustBuild(Config{
		Data:     d.left.Data(),
		Fragment: d.left.Fragment(),
		Children: children,
	})
}

// After rebuilds the post-edit subtree rooted at this DiffNode, via the
// right prototype's own Type.Builder - dropping every item whose After()
// is nil (Deletes contribute nothing to After).
func (d *DiffNode) After() Node {
	children := make([]Node, 0, len(d.items))
	for _, it := range d.items {
		if a := it.After(); a != nil {
			children = append(children, a)
		}
	}
	return d.right.Type().MustBuild(Config{
		Data:     d.right.Data(),
		Fragment: d.right.Fragment(),
		Children: children,
	})
}

// DiffTreeBuilder consumes a Mapping and produces a DiffTree: every node of
// L is wrapped as a DiffNode, unmapped children substitute a Replace or
// Delete action in their parent's item list, and every Insertion splices a
// fresh Insert action in at the position its Into/After anchor names.
type DiffTreeBuilder struct {
	mapping         *Mapping
	deleted         map[Node]bool
	insertsByParent map[Node][]Insertion
}

// NewDiffTreeBuilder precomputes the lookup structures Build needs from a
// frozen Mapping: a deleted-node set and an Into-keyed index of Insertions.
func NewDiffTreeBuilder(m *Mapping) *DiffTreeBuilder {
	deleted := make(map[Node]bool, len(m.deleted))
	for _, d := range m.deleted {
		deleted[d] = true
	}
	byParent := make(map[Node][]Insertion)
	for _, ins := range m.inserted {
		byParent[ins.Into] = append(byParent[ins.Into], ins)
	}
	return &DiffTreeBuilder{mapping: m, deleted: deleted, insertsByParent: byParent}
}

// BuildDiffTree is the usual entry point: build a DiffTreeBuilder from m and
// build the tree rooted at (left, right) in one call.
func BuildDiffTree(left, right Node, m *Mapping) DiffItem {
	return NewDiffTreeBuilder(m).Build(left, right)
}

// Build produces the top-level DiffItem for a (left, right) root pair. left
// or right may be nil, matching TopDown/BottomUp's degenerate whole-tree
// cases: a wholesale Insert or Delete at the root carries no nested items,
// since the Mapping never decomposes a wholesale action any further (see
// astcore's design notes on "swallowed" subtrees).
func (b *DiffTreeBuilder) Build(left, right Node) DiffItem {
	switch {
	case left == nil && right == nil:
		return nil
	case left == nil:
		return NewInsert(right)
	case right == nil:
		return NewDelete(left)
	}
	if after, ok := b.mapping.replaced[left]; ok {
		return NewReplace(left, after)
	}
	return b.buildMapped(left)
}

func (b *DiffTreeBuilder) buildMapped(left Node) *DiffNode {
	right, ok := b.mapping.ltr[left]
	if !ok {
		panicInvariant("difftree", "left node not present in mapping: "+left.Type().Name())
	}
	return NewDiffNode(left, right, b.buildChildItems(left, right))
}

func (b *DiffTreeBuilder) buildItemForChild(left Node) DiffItem {
	if after, ok := b.mapping.replaced[left]; ok {
		return NewReplace(left, after)
	}
	if b.deleted[left] {
		return NewDelete(left)
	}
	if _, ok := b.mapping.ltr[left]; ok {
		return b.buildMapped(left)
	}
	panicInvariant("difftree", "left child not accounted for by mapping: "+left.Type().Name())
	return nil
}

// buildChildItems builds left's children as items, then splices in every
// Insertion whose Into is right, in the order the mapper recorded them.
// An anchor (Insertion.After) may name either a left-tree child already
// present in the item list or a right-tree node spliced in by an earlier
// iteration of this same loop - both are tracked, positionally, in anchors.
func (b *DiffTreeBuilder) buildChildItems(left, right Node) []DiffItem {
	children := left.Children()
	items := make([]DiffItem, 0, len(children))
	anchors := make([]Node, 0, len(children))
	for _, ch := range children {
		items = append(items, b.buildItemForChild(ch))
		anchors = append(anchors, ch)
	}

	for _, ins := range b.insertsByParent[right] {
		pos := len(items)
		if ins.After != nil {
			for i, a := range anchors {
				if a == ins.After {
					pos = i + 1
					break
				}
			}
		} else {
			pos = 0
		}
		items = spliceItem(items, pos, NewInsert(ins.Node))
		anchors = spliceNode(anchors, pos, ins.Node)
	}
	return items
}

func spliceItem(items []DiffItem, pos int, it DiffItem) []DiffItem {
	out := make([]DiffItem, 0, len(items)+1)
	out = append(out, items[:pos]...)
	out = append(out, it)
	out = append(out, items[pos:]...)
	return out
}

func spliceNode(nodes []Node, pos int, n Node) []Node {
	out := make([]Node, 0, len(nodes)+1)
	out = append(out, nodes[:pos]...)
	out = append(out, n)
	out = append(out, nodes[pos:]...)
	return out
}
