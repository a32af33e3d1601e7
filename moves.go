package astcore

// Move is additive metadata over a Mapping: a mapped pair whose right-tree
// position, among its parent's other mapped siblings, is not in the same
// relative order as its left-tree position. Move never drives the core
// algorithms - it is computed after the fact, purely for reporting (see
// Differ's WithMoves, ComputeStats and Flatten).
type Move struct {
	Before, After        Node
	OldParent, NewParent Node
	OldIndex, NewIndex   int
}

// DetectMoves walks left's tree looking for reordered children under every
// mapped parent and returns every reordering found. left must be the same
// tree m was computed from.
func DetectMoves(m *Mapping, left Node) []Move {
	var moves []Move
	var walk func(Node)
	walk = func(n Node) {
		detectMovesAt(m, n, &moves)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(left)
	return moves
}

// detectMovesAt finds moves among one parent's mapped children: it
// computes the longest common subsequence between the parent's mapped
// left children (in left order) and the mapped right parent's children
// (in right order), matching a left child to a right child exactly when
// the Mapping maps one to the other. Any mapped child outside that
// subsequence moved relative to its siblings.
//
// This is grounded on qri-io/deepdiff's calcReorderDeltas/movedBNodes: the
// same longest-common-subsequence idea, collapsed into a single DP pass
// with one backtrack instead of two backtracks plus a set-intersection
// step, since astcore computes moves per parent (small, bounded lists)
// rather than over whole-document child sequences sharded for parallel DP.
func detectMovesAt(m *Mapping, parent Node, moves *[]Move) {
	rightParent, ok := m.GetRight(parent)
	if !ok {
		return
	}

	leftChildren := parent.Children()
	var leftSeq []Node
	for _, c := range leftChildren {
		if _, ok := m.GetRight(c); ok {
			leftSeq = append(leftSeq, c)
		}
	}
	if len(leftSeq) < 2 {
		return
	}

	rightChildren := rightParent.Children()
	mask := longestCommonSubsequenceMask(leftSeq, func(n Node) Node {
		r, _ := m.GetRight(n)
		return r
	}, rightChildren)

	leftIndex := make(map[Node]int, len(leftChildren))
	for i, lc := range leftChildren {
		leftIndex[lc] = i
	}
	rightIndex := make(map[Node]int, len(rightChildren))
	for i, rc := range rightChildren {
		rightIndex[rc] = i
	}

	for i, l := range leftSeq {
		if mask[i] {
			continue
		}
		r, _ := m.GetRight(l)
		*moves = append(*moves, Move{
			Before:    l,
			After:     r,
			OldParent: parent,
			NewParent: rightParent,
			OldIndex:  leftIndex[l],
			NewIndex:  rightIndex[r],
		})
	}
}

// longestCommonSubsequenceMask returns, for each index of a, whether a[i]
// (via the correspondence bOf) participates in a longest common
// subsequence between a and b.
func longestCommonSubsequenceMask(a []Node, bOf func(Node) Node, b []Node) []bool {
	m, n := len(a), len(b)
	c := make([][]int, m+1)
	for i := range c {
		c[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case bOf(a[i-1]) == b[j-1]:
				c[i][j] = c[i-1][j-1] + 1
			case c[i-1][j] >= c[i][j-1]:
				c[i][j] = c[i-1][j]
			default:
				c[i][j] = c[i][j-1]
			}
		}
	}

	mask := make([]bool, m)
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case bOf(a[i-1]) == b[j-1]:
			mask[i-1] = true
			i--
			j--
		case c[i-1][j] >= c[i][j-1]:
			i--
		default:
			j--
		}
	}
	return mask
}
