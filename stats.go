package astcore

// Stats holds summary counts over a Mapping, computed against the left and
// right tree roots it was computed from.
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	Mapped   int `json:"mapped"`             // nodes carried across (identical or realigned)
	Replaced int `json:"replaced,omitempty"` // nodes wholesale-replaced
	Inserted int `json:"inserted,omitempty"` // nodes newly present in the right tree
	Deleted  int `json:"deleted,omitempty"`  // nodes only present in the left tree
	Moved    int `json:"moved,omitempty"`    // mapped nodes whose sibling order changed
}

// ComputeStats summarizes m against left and right. moves may be nil if
// the caller skipped move detection.
func ComputeStats(left, right Node, m *Mapping, moves []Move) Stats {
	return Stats{
		Left:     CountNodes(left),
		Right:    CountNodes(right),
		Mapped:   len(m.Mapped()),
		Replaced: len(m.ReplacedOrder()),
		Inserted: len(m.GetInserted()),
		Deleted:  len(m.GetDeleted()),
		Moved:    len(moves),
	}
}

// CountNodes counts root and every descendant; a nil root counts as zero.
func CountNodes(root Node) int {
	if root == nil {
		return 0
	}
	n := 1
	for _, c := range root.Children() {
		n += CountNodes(c)
	}
	return n
}

// NodeChange returns the shift in total node count between left and right.
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// PctChanged returns the fraction of the larger tree touched by an edit -
// replaced, inserted or deleted - 0 meaning the trees are identical.
func (s Stats) PctChanged() float64 {
	total := s.Left
	if s.Right > total {
		total = s.Right
	}
	if total == 0 {
		return 0
	}
	return float64(s.Replaced+s.Inserted+s.Deleted) / float64(total)
}
