package astcore

// ChangeKind mirrors the edit operations a Mapping records, flattened
// into one serializable list, for callers that would rather not walk a
// DiffTree by hand.
type ChangeKind string

const (
	// ChangeInsert is a node present only in the right tree.
	ChangeInsert ChangeKind = "insert"
	// ChangeDelete is a node present only in the left tree.
	ChangeDelete ChangeKind = "delete"
	// ChangeReplace is a wholesale before->after substitution.
	ChangeReplace ChangeKind = "replace"
	// ChangeMove is a mapped pair whose sibling order changed.
	ChangeMove ChangeKind = "move"
)

// Change is one flattened edit: its kind, a child-index path locating it
// (in the right tree for an insert or a move, in the left tree for a
// delete or a replace, located by its Before node), and the node(s)
// involved. Replace and Move are reversible - both Before and After are
// set; Insert carries only After, Delete only Before.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	Path   []int      `json:"path"`
	Before Node       `json:"-"`
	After  Node       `json:"-"`
}

// Flatten produces the change list for m against left and right, plus
// moves if detected (nil to skip). The result has no inherent order
// beyond grouping by kind - sort it by Path if a stable document order is
// required.
func Flatten(left, right Node, m *Mapping, moves []Move) []Change {
	var out []Change

	for _, d := range m.GetDeleted() {
		out = append(out, Change{Kind: ChangeDelete, Path: pathTo(left, d), Before: d})
	}

	replaced := m.GetReplaced()
	for _, before := range m.ReplacedOrder() {
		out = append(out, Change{Kind: ChangeReplace, Path: pathTo(left, before), Before: before, After: replaced[before]})
	}

	for _, ins := range m.GetInserted() {
		out = append(out, Change{Kind: ChangeInsert, Path: pathTo(right, ins.Node), After: ins.Node})
	}

	for _, mv := range moves {
		out = append(out, Change{Kind: ChangeMove, Path: pathTo(right, mv.After), Before: mv.Before, After: mv.After})
	}

	return out
}

// pathTo returns the child-index path from root down to target, or nil if
// target is not found under root.
func pathTo(root, target Node) []int {
	if root == target {
		return []int{}
	}
	for i, c := range root.Children() {
		if p := pathTo(c, target); p != nil {
			return append([]int{i}, p...)
		}
	}
	return nil
}
