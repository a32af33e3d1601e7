package astcore

// TopDownMapper aligns two whole trees top-down: roots that are
// structurally identical (equal absolute hash) are coalesced without
// emitting any edit action; roots that share a type and datum are mapped
// and their children aligned via Section/NodePairFinder; roots that agree
// on neither are reported as a failure to the caller, which records a
// root-level wholesale Replace.
//
// TopDownMapper performs no I/O, never blocks, and always terminates:
// every phase either makes progress (maps or actions at least one node
// pair) or falls through to phase 3, which always shrinks the section by
// one element on each side.
type TopDownMapper struct{}

// Map implements Mapper.
func (TopDownMapper) Map(left, right Node) *Mapping {
	return TopDown(left, right)
}

// TopDown runs the top-down algorithm described in astcore's design: the
// package-level entry point TopDownMapper.Map forwards to this function.
func TopDown(left, right Node) *Mapping {
	m := &topDownRun{builder: newMappingBuilder()}

	switch {
	case left == nil && right == nil:
		// map(âˆ…, âˆ…): empty mapping.
	case left == nil:
		// map(âˆ…, R): R is new content, wholesale - not decomposed per node.
		m.builder.Insert(right, nil, nil)
	case right == nil:
		// map(L, âˆ…): L is gone, wholesale.
		m.builder.Delete(left)
	default:
		_, lRoot := BuildExtIndex(left)
		_, rRoot := BuildExtIndex(right)
		if !m.mapPair(lRoot, rRoot) {
			// Root types/data disagree and no subtree-level match exists:
			// record a wholesale replace and stop - descendants are not
			// separately accounted for, they're swallowed by the
			// Replace's before()/after() projections (see SPEC_FULL Â§9,
			// scenario S6).
			m.builder.Replace(left, right)
		}
	}
	return m.builder.Freeze()
}

type topDownRun struct {
	builder *mappingBuilder
}

// mapPair is "execute" in spec terms: try to align (l, r), reporting
// whether it succeeded. Failure is not an error - the caller decides
// whether to degrade to a Replace of just this pair.
func (m *topDownRun) mapPair(l, r ExtNode) bool {
	if l.AbsoluteHash() == r.AbsoluteHash() {
		m.mapIdenticalSubtree(l, r)
		return true
	}
	if l.Proto().Type().Name() != r.Proto().Type().Name() || l.Proto().Data() != r.Proto().Data() {
		return false
	}
	m.builder.Map(l.Proto(), r.Proto())
	m.alignChildren(l, r)
	return true
}

// mapIdenticalSubtree maps l<->r and recursively maps every descendant
// pairwise - equal absolute hash means equal shape, so corresponding
// children exist on both sides (barring a hash collision).
func (m *topDownRun) mapIdenticalSubtree(l, r ExtNode) {
	m.builder.Map(l.Proto(), r.Proto())
	lc, rc := l.Children(), r.Children()
	n := len(lc)
	if len(rc) < n {
		n = len(rc)
	}
	for i := 0; i < n; i++ {
		m.mapIdenticalSubtree(lc[i], rc[i])
	}
}

// alignChildren partitions l and r's children into Sections and processes
// them until none remain, per astcore's Â§4.4 step 3.
func (m *topDownRun) alignChildren(l, r ExtNode) {
	queue := []*Section{NewSection(l.Children(), r.Children())}
	for len(queue) > 0 {
		sec := queue[0]
		queue = queue[1:]
		m.processSection(sec, &queue)
	}
}

func (m *topDownRun) processSection(sec *Section, queue *[]*Section) {
	lSize, rSize := len(sec.Left), len(sec.Right)

	switch {
	case lSize == 0 && rSize == 0:
		return
	case lSize == 0:
		m.insertAll(sec)
	case rSize == 0:
		m.deleteAll(sec)
	case lSize == 1 && rSize == 1:
		if !m.mapPair(sec.Left[0], sec.Right[0]) {
			m.builder.Replace(sec.Left[0].Proto(), sec.Right[0].Proto())
		}
	default:
		if !sec.hasFlag(flagNoIdentical) {
			if run, ok := NewNodePairFinder(sec, HashAbsolute).FindLongestRun(); ok {
				m.mapRun(sec, run, queue, true)
				return
			}
			sec.setFlag(flagNoIdentical)
		}
		if !sec.hasFlag(flagNoSimilar) {
			if run, ok := NewNodePairFinder(sec, HashLocal).FindLongestRun(); ok {
				m.mapRun(sec, run, queue, false)
				return
			}
			sec.setFlag(flagNoSimilar)
		}
		m.replaceFirstPair(sec, queue)
	}
}

// insertAll emits an Insert for every remaining right child, anchored
// after the section's previous sibling, then after each freshly inserted
// peer, so the anchors stay stable left-to-right.
func (m *topDownRun) insertAll(sec *Section) {
	var into Node
	if len(sec.Right) > 0 {
		if p, ok := sec.Right[0].Parent(); ok {
			into = p.Proto()
		}
	}
	after := extNodeProtoOrNil(sec.Previous)
	for _, r := range sec.Right {
		m.builder.Insert(r.Proto(), into, after)
		after = r.Proto()
	}
}

// deleteAll emits a Delete for every remaining left child.
func (m *topDownRun) deleteAll(sec *Section) {
	for _, l := range sec.Left {
		m.builder.Delete(l.Proto())
	}
}

// mapRun maps every pair in a matched run - as identical subtrees (phase
// 1, absolute hash) or by recursing mapPair and replacing on failure
// (phase 2, local hash) - then splits the section around the run into up
// to two sub-sections and requeues them ahead of whatever was already
// queued, preserving left-to-right processing of this child list.
func (m *topDownRun) mapRun(sec *Section, run PairMatch, queue *[]*Section, identical bool) {
	for k := 0; k < run.Count; k++ {
		l := sec.Left[run.LeftOffset+k]
		r := sec.Right[run.RightOffset+k]
		if identical {
			m.mapIdenticalSubtree(l, r)
		} else if !m.mapPair(l, r) {
			m.builder.Replace(l.Proto(), r.Proto())
		}
	}

	preLeft, postLeft := sec.Left[:run.LeftOffset], sec.Left[run.LeftOffset+run.Count:]
	preRight, postRight := sec.Right[:run.RightOffset], sec.Right[run.RightOffset+run.Count:]

	var lastMatched ExtNode
	if run.Count > 0 {
		lastMatched = sec.Left[run.LeftOffset+run.Count-1]
	}

	var fresh []*Section
	if len(preLeft) > 0 || len(preRight) > 0 {
		fresh = append(fresh, &Section{Previous: sec.Previous, Left: preLeft, Right: preRight})
	}
	if len(postLeft) > 0 || len(postRight) > 0 {
		fresh = append(fresh, &Section{Previous: lastMatched, Left: postLeft, Right: postRight})
	}
	*queue = append(fresh, *queue...)
}

// replaceFirstPair is phase 3: replace left[0] and right[0] directly (no
// recursive alignment attempt - phases 1 and 2 already exhausted any
// structural overlap), then shrink the section by one on each side. This
// always makes progress, guaranteeing termination.
func (m *topDownRun) replaceFirstPair(sec *Section, queue *[]*Section) {
	l0, r0 := sec.Left[0], sec.Right[0]
	m.builder.Replace(l0.Proto(), r0.Proto())

	rest := &Section{Previous: l0, Left: sec.Left[1:], Right: sec.Right[1:], flags: sec.flags}
	if len(rest.Left) > 0 || len(rest.Right) > 0 {
		*queue = append([]*Section{rest}, *queue...)
	}
}

func extNodeProtoOrNil(e ExtNode) Node {
	if !e.Valid() {
		return nil
	}
	return e.Proto()
}
