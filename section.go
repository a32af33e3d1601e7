package astcore

// sectionFlags memoizes "no match of this kind here" across passes over a
// Section so a shrunk-but-unchanged section isn't re-probed for a pass that
// already failed on it.
type sectionFlags uint8

const (
	flagNoIdentical sectionFlags = 1 << iota
	flagNoSimilar
)

// Section is a contiguous, unprocessed slice of both trees' child lists
// being aligned by the top-down algorithm: a run of left-tree children and
// a run of right-tree children not yet resolved to a mapping or an action,
// plus the left-tree sibling (if any) immediately preceding this section -
// the anchor new Inserts attach after.
type Section struct {
	Previous ExtNode
	Left     []ExtNode
	Right    []ExtNode
	flags    sectionFlags
}

// NewSection seeds a section covering a whole child range, with no
// preceding sibling (the section starts at position 0 on both sides).
func NewSection(left, right []ExtNode) *Section {
	return &Section{Left: left, Right: right}
}

func (s *Section) hasFlag(f sectionFlags) bool { return s.flags&f != 0 }
func (s *Section) setFlag(f sectionFlags)      { s.flags |= f }

// removeNode drops n from whichever subset (Left or Right) contains it. If
// n was the leading Left element, Previous advances to n, since it now
// precedes whatever Left elements remain.
func (s *Section) removeNode(n ExtNode) {
	if i := indexOfExt(s.Left, n); i >= 0 {
		if i == 0 {
			s.Previous = n
		}
		s.Left = append(append([]ExtNode{}, s.Left[:i]...), s.Left[i+1:]...)
		return
	}
	if i := indexOfExt(s.Right, n); i >= 0 {
		s.Right = append(append([]ExtNode{}, s.Right[:i]...), s.Right[i+1:]...)
	}
}

// removeNodes splits the section into up to two sub-sections around a
// matched pair (nLeft, nRight): a leading sub-section (elements before the
// pair, keeping this section's Previous) and a trailing sub-section
// (elements after the pair, with nLeft as its Previous). Either may be nil
// if empty on both sides.
func (s *Section) removeNodes(nLeft, nRight ExtNode) (pre, post *Section) {
	li := indexOfExt(s.Left, nLeft)
	ri := indexOfExt(s.Right, nRight)
	if li < 0 || ri < 0 {
		panicInvariant("section", "removeNodes: pair not present in section")
	}

	preLeft, postLeft := s.Left[:li], s.Left[li+1:]
	preRight, postRight := s.Right[:ri], s.Right[ri+1:]

	if len(preLeft) > 0 || len(preRight) > 0 {
		pre = &Section{Previous: s.Previous, Left: preLeft, Right: preRight}
	}
	if len(postLeft) > 0 || len(postRight) > 0 {
		post = &Section{Previous: nLeft, Left: postLeft, Right: postRight}
	}
	return pre, post
}

func indexOfExt(list []ExtNode, n ExtNode) int {
	for i, e := range list {
		if e.index == n.index && e.idx == n.idx {
			return i
		}
	}
	return -1
}
