package astcore

import "sort"

// BottomUpMapper aligns two whole trees leaf first: whole subtrees with a
// unique absolute-hash match are mapped outright (tallest first, so a
// matched ancestor consumes its descendants before they're independently
// considered), then matched pairs are walked upward one parent level at a
// time. A parent pair is promoted to mapped once every one of its
// already-mapped children agrees on the same right-parent and the parents
// share a type and datum (the partially-mapped-node rule) - at that point
// its remaining, still-unmatched children are resolved the same way the
// top-down algorithm resolves a child list: Section/NodePairFinder runs,
// falling back to a direct replace of the first remaining pair.
//
// BottomUpMapper complements TopDownMapper rather than replacing it: it
// tends to recover matches top-down's type-and-data gate at the root
// misses entirely (a retyped root with an unchanged interior), at the
// cost of being more willing to call two structurally different nodes
// "the same" on the strength of shared descendants.
type BottomUpMapper struct{}

// Map implements Mapper.
func (BottomUpMapper) Map(left, right Node) *Mapping {
	return BottomUp(left, right)
}

// BottomUp runs the bottom-up algorithm; BottomUpMapper.Map forwards here.
func BottomUp(left, right Node) *Mapping {
	b := &bottomUpRun{builder: newMappingBuilder()}

	switch {
	case left == nil && right == nil:
	case left == nil:
		b.builder.Insert(right, nil, nil)
	case right == nil:
		b.builder.Delete(left)
	default:
		_, lRoot := BuildExtIndex(left)
		_, rRoot := BuildExtIndex(right)
		lmap := extNodeMap(lRoot)
		rmap := extNodeMap(rRoot)
		b.matchIdenticalSubtrees(lRoot, rRoot)
		b.ascend(lmap, rmap)
		b.finish(left, right, lRoot, rRoot)
	}
	return b.builder.Freeze()
}

type bottomUpRun struct {
	builder *mappingBuilder
}

// matchIdenticalSubtrees performs spec.md §4.6 steps 1-3: linearize both
// trees in post-order, group the right side by absolute hash, then walk
// left candidates tallest-subtree first so a matched ancestor's
// descendants are consumed as a unit rather than independently
// reconsidered once the walk reaches them. Every left node whose absolute
// hash is shared by exactly one not-yet-used right node is mapped,
// recursively, as a whole identical subtree. This recovers a uniquely
// duplicated interior subtree (say a List(Const<"1">, Const<"1">) that
// appears unchanged on both sides) even when its own leaves are
// individually ambiguous - a leaves-only pass matching by local hash
// would skip every one of those leaves and never seed an ascent from
// that branch at all.
func (b *bottomUpRun) matchIdenticalSubtrees(lRoot, rRoot ExtNode) {
	rightNodes, _ := postOrderWithHeight(rRoot)
	rightByHash := make(map[uint64][]ExtNode, len(rightNodes))
	for _, r := range rightNodes {
		rightByHash[r.AbsoluteHash()] = append(rightByHash[r.AbsoluteHash()], r)
	}

	leftNodes, leftHeight := postOrderWithHeight(lRoot)
	sort.SliceStable(leftNodes, func(i, j int) bool {
		return leftHeight[leftNodes[i]] > leftHeight[leftNodes[j]]
	})

	used := make(map[Node]bool, len(rightNodes))
	for _, l := range leftNodes {
		if b.builder.IsLeftHandled(l.Proto()) {
			continue
		}
		var avail ExtNode
		count := 0
		for _, r := range rightByHash[l.AbsoluteHash()] {
			if used[r.Proto()] || b.builder.IsRightHandled(r.Proto()) {
				continue
			}
			avail = r
			count++
			if count > 1 {
				break
			}
		}
		if count != 1 {
			continue
		}
		b.mapIdentical(l, avail, used)
	}
}

// postOrderWithHeight walks root post-order (children before parent),
// also recording each node's subtree height (0 at a leaf) so callers can
// prioritize larger subtrees without recomputing height per node.
func postOrderWithHeight(root ExtNode) ([]ExtNode, map[ExtNode]int) {
	var out []ExtNode
	heights := make(map[ExtNode]int)
	var walk func(ExtNode) int
	walk = func(n ExtNode) int {
		height := 0
		for _, c := range n.Children() {
			if ch := walk(c); ch+1 > height {
				height = ch + 1
			}
		}
		heights[n] = height
		out = append(out, n)
		return height
	}
	walk(root)
	return out, heights
}

// mapIdentical maps l<->r and every corresponding descendant pair - equal
// absolute hash implies equal shape - marking each right node consumed so
// a once-matched subtree is never claimed again by some other candidate
// later in the same pass.
func (b *bottomUpRun) mapIdentical(l, r ExtNode, used map[Node]bool) {
	b.builder.Map(l.Proto(), r.Proto())
	used[r.Proto()] = true
	lc, rc := l.Children(), r.Children()
	n := len(lc)
	if len(rc) < n {
		n = len(rc)
	}
	for i := 0; i < n; i++ {
		b.mapIdentical(lc[i], rc[i], used)
	}
}

func extNodeMap(root ExtNode) map[Node]ExtNode {
	out := make(map[Node]ExtNode)
	var walk func(ExtNode)
	walk = func(n ExtNode) {
		out[n.Proto()] = n
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// ascend drains a worklist of freshly-mapped left nodes, trying to promote
// each one's parent pair to mapped too. A parent is promoted only once
// the set of right-parents implied by ALL of its already-mapped children
// agrees on a single node (singleMappedParent) and the two parents share
// a type and datum - the partially-mapped-node rule of spec.md §4.6 step
// 4. A successful promotion resolves the parent's remaining children via
// alignRemaining and re-enqueues the parent itself, so matching climbs
// the tree one level at a time until it either reaches the root or meets
// a level with no unambiguous parent match.
func (b *bottomUpRun) ascend(lmap, rmap map[Node]ExtNode) {
	queue := append([]Node{}, b.builder.ltrOrder...)
	seen := make(map[Node]bool, len(queue))

	for len(queue) > 0 {
		leftProto := queue[0]
		queue = queue[1:]
		if seen[leftProto] {
			continue
		}
		seen[leftProto] = true

		lchild, ok := lmap[leftProto]
		if !ok {
			continue
		}
		lp, hasParent := lchild.Parent()
		if !hasParent || b.builder.IsLeftHandled(lp.Proto()) {
			continue
		}

		rp, ok := b.singleMappedParent(lp, rmap)
		if !ok || b.builder.IsRightHandled(rp.Proto()) {
			continue
		}
		if lp.Proto().Type().Name() != rp.Proto().Type().Name() || lp.Proto().Data() != rp.Proto().Data() {
			continue
		}

		b.builder.Map(lp.Proto(), rp.Proto())
		b.alignRemaining(lp, rp)
		queue = append(queue, lp.Proto())
	}
}

// singleMappedParent collects the right-parents implied by every one of
// lp's children that is already mapped (via the builder's ltr table) and
// returns that set's sole member. Two children of lp mapping to two
// different right parents means lp itself has no unambiguous match yet,
// so the caller must not promote it.
func (b *bottomUpRun) singleMappedParent(lp ExtNode, rmap map[Node]ExtNode) (ExtNode, bool) {
	var found ExtNode
	for _, lc := range lp.Children() {
		rightProto, ok := b.builder.ltr[lc.Proto()]
		if !ok {
			continue
		}
		rc, ok := rmap[rightProto]
		if !ok {
			continue
		}
		rp, ok := rc.Parent()
		if !ok {
			continue
		}
		switch {
		case !found.Valid():
			found = rp
		case found.Proto() != rp.Proto():
			return ExtNode{}, false
		}
	}
	if !found.Valid() {
		return ExtNode{}, false
	}
	return found, true
}

// finish accounts for the root pair if ascend never climbed all the way up
// to it (the usual case when interior matches are sparse), then sweeps
// whatever children that root-level resolution leaves unresolved.
func (b *bottomUpRun) finish(left, right Node, lRoot, rRoot ExtNode) {
	if b.builder.IsLeftHandled(left) {
		return
	}
	if left.Type().Name() == right.Type().Name() && left.Data() == right.Data() {
		b.builder.Map(left, right)
	} else {
		b.builder.Replace(left, right)
	}
	b.alignRemaining(lRoot, rRoot)
}

// alignRemaining resolves a parent pair's direct children: already-mapped
// children (anchors, found via the builder's ltr table) are left alone;
// the gaps between them are handed to topDownRun.processSection, reusing
// top-down's Section/NodePairFinder machinery and its recursive
// mapPair/alignChildren descent for whatever those gaps contain.
func (b *bottomUpRun) alignRemaining(l, r ExtNode) {
	lc, rc := l.Children(), r.Children()

	type anchor struct {
		leftIdx, rightIdx int
		left              ExtNode
	}
	var anchors []anchor
	lastRight := -1
	for i, lch := range lc {
		rightProto, ok := b.builder.ltr[lch.Proto()]
		if !ok {
			continue
		}
		j := indexOfProto(rc, rightProto)
		if j < 0 || j <= lastRight {
			continue
		}
		anchors = append(anchors, anchor{leftIdx: i, rightIdx: j, left: lch})
		lastRight = j
	}

	var queue []*Section
	li, ri := 0, 0
	var previous ExtNode
	for _, a := range anchors {
		gapLeft, gapRight := lc[li:a.leftIdx], rc[ri:a.rightIdx]
		if len(gapLeft) > 0 || len(gapRight) > 0 {
			queue = append(queue, &Section{Previous: previous, Left: gapLeft, Right: gapRight})
		}
		previous = a.left
		li, ri = a.leftIdx+1, a.rightIdx+1
	}
	if tailLeft, tailRight := lc[li:], rc[ri:]; len(tailLeft) > 0 || len(tailRight) > 0 {
		queue = append(queue, &Section{Previous: previous, Left: tailLeft, Right: tailRight})
	}

	td := &topDownRun{builder: b.builder}
	for len(queue) > 0 {
		sec := queue[0]
		queue = queue[1:]
		td.processSection(sec, &queue)
	}
}

func indexOfProto(list []ExtNode, proto Node) int {
	for i, e := range list {
		if e.Proto() == proto {
			return i
		}
	}
	return -1
}
