// Package astcore computes structural diffs between immutable, ordered,
// labeled trees of the kind produced by parsing source code into an AST:
// each node carries a type name, an optional textual datum, and an ordered
// list of children.
//
// Given two rooted trees L (before) and R (after), astcore produces a
// Mapping that pairs nodes of L with nodes of R, and from that mapping an
// edit script of Insert, Replace and Delete actions that transforms L into
// R. A DiffTree overlays that script back onto L, answering Before()/After()
// projections; a Pattern generalizes a DiffTree by turning some of its
// subtrees into typed Hole wildcards for later matching.
//
// astcore runs two mapping strategies. TopDownMapper aligns whole trees
// top-down, coalescing identical subtrees by hash and falling back to
// positional child alignment when they differ. BottomUpMapper works
// leaf-first, anchoring on large identical subtrees and climbing to their
// common ancestors - useful when the top-down algorithm would otherwise
// replace the whole tree at the root.
//
// Neither mapper minimizes edit-script size: both are greedy heuristics in
// the tradition of the XML diffing literature (Cobéna & Marian, "Detecting
// Changes in XML Documents"), not tree-edit-distance solvers. Neither mapper
// performs I/O, blocks, or suspends; Mapper.Map is a pure function of its
// two inputs and may be invoked concurrently on disjoint tree pairs, see
// BatchMapper.
//
// Parsing source text into nodes, serializing nodes to/from JSON,
// rendering Graphviz DOT, and rewriting one AST dialect into another are
// external concerns astcore is built to be driven by, not implement; see
// the sibling astdraft, astjson, astdot and astreport packages.
package astcore
