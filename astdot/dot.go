// Package astdot renders an astcore tree as a Graphviz DOT graph. It only
// ever writes to an io.Writer - no file handling, no invoking the `dot`
// binary - so a caller decides what to do with the text (write it to disk,
// pipe it to `dot -Tsvg`, embed it in a report).
package astdot

import (
	"fmt"
	"io"

	"github.com/cqfn/astranaut-go"
)

// dataColor is the fill color used for a node's data label, kept distinct
// from any plausible type color so data always stands out in the render.
const dataColor = "lightyellow"

// defaultColor is used for a type with no explicit override.
const defaultColor = "lightgray"

// Options configures the render: Colors overrides the default per-type
// fill color by type name; a name absent from Colors falls back to
// defaultColor.
type Options struct {
	Colors map[string]string
}

func (o Options) colorFor(typeName string) string {
	if c, ok := o.Colors[typeName]; ok {
		return c
	}
	return defaultColor
}

// Write renders root as a DOT digraph to w using default options.
func Write(w io.Writer, root astcore.Node) error {
	return WriteOptions(w, root, Options{})
}

// WriteOptions renders root as a DOT digraph to w, honoring opts.
func WriteOptions(w io.Writer, root astcore.Node, opts Options) error {
	if _, err := fmt.Fprintln(w, "digraph AST {"); err != nil {
		return fmt.Errorf("astdot: write: %w", err)
	}
	if _, err := fmt.Fprintln(w, "  node [style=filled];"); err != nil {
		return fmt.Errorf("astdot: write: %w", err)
	}

	ids := make(map[astcore.Node]int)
	next := 0
	var writeNode func(n astcore.Node) (int, error)
	writeNode = func(n astcore.Node) (int, error) {
		id := next
		next++
		ids[n] = id

		label := n.Type().Name()
		if _, err := fmt.Fprintf(w, "  n%d [label=%q, fillcolor=%q];\n", id, label, opts.colorFor(label)); err != nil {
			return 0, fmt.Errorf("astdot: write: %w", err)
		}

		if data := n.Data(); data != "" {
			dataID := next
			next++
			if _, err := fmt.Fprintf(w, "  n%d [label=%q, fillcolor=%q, shape=box];\n", dataID, data, dataColor); err != nil {
				return 0, fmt.Errorf("astdot: write: %w", err)
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d [style=dashed, arrowhead=none];\n", id, dataID); err != nil {
				return 0, fmt.Errorf("astdot: write: %w", err)
			}
		}

		for _, child := range n.Children() {
			childID, err := writeNode(child)
			if err != nil {
				return 0, err
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", id, childID); err != nil {
				return 0, fmt.Errorf("astdot: write: %w", err)
			}
		}
		return id, nil
	}

	if root != nil {
		if _, err := writeNode(root); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("astdot: write: %w", err)
	}
	return nil
}
