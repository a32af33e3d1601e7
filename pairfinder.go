package astcore

// HashKind selects which of a Section's precomputed hashes NodePairFinder
// compares: HashAbsolute for exact-subtree matches, HashLocal for
// same-shape-but-possibly-different-descendants candidates.
type HashKind int

const (
	HashAbsolute HashKind = iota
	HashLocal
)

// PairMatch is a contiguous run of matching indices: Left[LeftOffset:] and
// Right[RightOffset:] agree, pairwise, on Count consecutive elements.
type PairMatch struct {
	LeftOffset, RightOffset, Count int
}

// NodePairFinder enumerates candidate pairs (l_i, r_j) of a Section whose
// chosen hash coincides and finds the longest contiguous matching run,
// maximizing Count, then minimizing |LeftOffset-RightOffset|, then
// minimizing LeftOffset.
type NodePairFinder struct {
	section *Section
	kind    HashKind
}

// NewNodePairFinder builds a finder over a section for one hash kind.
func NewNodePairFinder(s *Section, kind HashKind) *NodePairFinder {
	return &NodePairFinder{section: s, kind: kind}
}

func (f *NodePairFinder) hashOf(e ExtNode) uint64 {
	if f.kind == HashAbsolute {
		return e.AbsoluteHash()
	}
	return e.LocalHash()
}

// FindLongestRun returns the best contiguous matching run in the section,
// or false if no pair shares a hash.
func (f *NodePairFinder) FindLongestRun() (PairMatch, bool) {
	left, right := f.section.Left, f.section.Right
	var best PairMatch
	found := false

	for i := range left {
		for j := range right {
			if f.hashOf(left[i]) != f.hashOf(right[j]) {
				continue
			}
			count := 1
			for i+count < len(left) && j+count < len(right) &&
				f.hashOf(left[i+count]) == f.hashOf(right[j+count]) {
				count++
			}
			cand := PairMatch{LeftOffset: i, RightOffset: j, Count: count}
			if !found || pairMatchBetter(cand, best) {
				best, found = cand, true
			}
		}
	}
	return best, found
}

func pairMatchBetter(a, b PairMatch) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	ad, bd := absInt(a.LeftOffset-a.RightOffset), absInt(b.LeftOffset-b.RightOffset)
	if ad != bd {
		return ad < bd
	}
	return a.LeftOffset < b.LeftOffset
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BestIdenticalPair returns a single best matching pair, for callers that
// need one candidate rather than a run. Neither mapping algorithm in this
// package calls it.
func (f *NodePairFinder) BestIdenticalPair() (left, right ExtNode, ok bool) {
	m, found := f.FindLongestRun()
	if !found {
		return ExtNode{}, ExtNode{}, false
	}
	return f.section.Left[m.LeftOffset], f.section.Right[m.RightOffset], true
}

// RightPairOfIdenticalNode returns the single right-section node whose hash
// matches ref, if there is exactly one (a singleton candidate).
func (f *NodePairFinder) RightPairOfIdenticalNode(ref ExtNode) (ExtNode, bool) {
	var match ExtNode
	count := 0
	refHash := f.hashOf(ref)
	for _, r := range f.section.Right {
		if f.hashOf(r) == refHash {
			match = r
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return ExtNode{}, false
}
