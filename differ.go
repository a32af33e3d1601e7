package astcore

import (
	"context"
	"log/slog"
)

// DiffConfig configures a Differ: which Mapper produces the base mapping, and
// which optional post-passes to run over its result.
type DiffConfig struct {
	// Strategy picks the base Mapper. A nil Strategy defaults to
	// TopDownMapper.
	Strategy Mapper
	// Moves, if true, has Diff additionally run DetectMoves.
	Moves bool
	// Stats, if true, has Diff additionally run ComputeStats.
	Stats bool
}

// Option adjusts a DiffConfig; zero or more Options can be passed to New.
type Option func(cfg *DiffConfig)

// WithBottomUp selects BottomUpMapper instead of the default TopDownMapper.
func WithBottomUp() Option {
	return func(cfg *DiffConfig) { cfg.Strategy = BottomUpMapper{} }
}

// WithMapper selects an arbitrary Mapper as the strategy.
func WithMapper(m Mapper) Option {
	return func(cfg *DiffConfig) { cfg.Strategy = m }
}

// WithMoves enables move detection.
func WithMoves() Option {
	return func(cfg *DiffConfig) { cfg.Moves = true }
}

// WithStats enables stats computation.
func WithStats() Option {
	return func(cfg *DiffConfig) { cfg.Stats = true }
}

// Differ is a configured facade over the mapping algorithms: pick a
// strategy and a set of post-passes once, then reuse it across many
// (left, right) pairs.
type Differ struct {
	strategy Mapper
	moves    bool
	stats    bool
}

// New constructs a Differ, applying opts over the default configuration
// (TopDownMapper, no moves, no stats).
func New(opts ...Option) *Differ {
	cfg := &DiffConfig{Strategy: TopDownMapper{}}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Strategy == nil {
		cfg.Strategy = TopDownMapper{}
	}
	return &Differ{strategy: cfg.Strategy, moves: cfg.Moves, stats: cfg.Stats}
}

// Result collects everything Diff can produce: the raw Mapping, the
// DiffTree built over it, and - if requested - moves and stats.
type Result struct {
	Mapping *Mapping
	Tree    DiffItem
	Moves   []Move
	Stats   *Stats
}

// Diff maps left to right with the configured strategy and assembles a
// Result. ctx is honored only as a cancellation signal checked between
// phases - Mapper.Map itself is synchronous and accepts no context, per
// astcore's Mapper contract.
func (d *Differ) Diff(ctx context.Context, left, right Node) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("astcore: diff starting", "leftNodes", CountNodes(left), "rightNodes", CountNodes(right))

	m := d.strategy.Map(left, right)
	res := &Result{Mapping: m, Tree: BuildDiffTree(left, right, m)}

	if d.moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Moves = DetectMoves(m, left)
		if res.Moves == nil {
			res.Moves = []Move{}
		}
	}
	if d.stats {
		s := ComputeStats(left, right, m, res.Moves)
		res.Stats = &s
	}
	slog.Debug("astcore: diff finished", "mapped", len(m.Mapped()), "inserted", len(m.GetInserted()), "deleted", len(m.GetDeleted()))
	return res, nil
}
