package astcore

import (
	"fmt"
	"runtime"

	"github.com/creachadair/taskgroup"
)

// TreePair is one (left, right) root pair submitted to a BatchMapper.
type TreePair struct {
	Left, Right Node
}

// BatchMapper runs an underlying Mapper concurrently across many disjoint
// tree pairs, via github.com/creachadair/taskgroup. Mapper.Map is
// documented as a pure, non-blocking function of its two arguments, so
// pairs share no mutable state and can be mapped in any order; BatchMapper
// exists purely to parallelize the otherwise-sequential cost of mapping a
// large batch.
type BatchMapper struct {
	Mapper Mapper

	// Concurrency caps how many pairs are mapped at once. Zero or
	// negative means runtime.GOMAXPROCS(0).
	Concurrency int
}

// NewBatchMapper wraps mapper for concurrent use across many pairs.
func NewBatchMapper(mapper Mapper) *BatchMapper {
	return &BatchMapper{Mapper: mapper}
}

// MapAll maps every pair concurrently, one task per pair, and returns the
// results in the same order as pairs. A mapper that panics on some pair
// fails only that task; the panic is recovered and reported as an error,
// the remaining tasks still run to completion.
func (b *BatchMapper) MapAll(pairs []TreePair) ([]*Mapping, error) {
	limit := b.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]*Mapping, len(pairs))
	sem := make(chan struct{}, limit)
	g := taskgroup.New(nil)

	for i := range pairs {
		i, pair := i, pairs[i]
		g.Go(func() (err error) {
			sem <- struct{}{}
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					err = &BatchTaskError{Index: i, Panic: r}
				}
			}()
			results[i] = b.Mapper.Map(pair.Left, pair.Right)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// BatchTaskError reports a panic recovered from one MapAll task, keeping
// the batch index so the caller can tell which pair failed.
type BatchTaskError struct {
	Index int
	Panic any
}

func (e *BatchTaskError) Error() string {
	return fmt.Sprintf("astcore: batch mapping task %d panicked: %v", e.Index, e.Panic)
}
