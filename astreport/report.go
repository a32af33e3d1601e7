// Package astreport renders human-facing summaries of a diff: a unified
// text diff of the reconstructed source on either side of a DiffTree, and
// a short colorized statistics line summarizing how much of a tree
// changed.
package astreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/mds/mdiff"

	"github.com/cqfn/astranaut-go"
)

// ansi color codes used by the stats summary: green when at most 10% of
// the tree changed, yellow above 10%, red above 50%.
const (
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// UnifiedDiff renders a line-oriented unified diff between the textual
// reconstruction of item's before and after trees, using a Fragment's
// Source for the original text. leftLabel/rightLabel are the file labels
// used in the diff header (conventionally a path or a language tag).
func UnifiedDiff(w io.Writer, item astcore.DiffItem, leftLabel, rightLabel string) error {
	before := sourceText(item.Before())
	after := sourceText(item.After())

	lhs, rhs := strings.Split(before, "\n"), strings.Split(after, "\n")
	diff := mdiff.New(lhs, rhs).AddContext(3)
	mdiff.FormatUnified(w, diff, &mdiff.FileInfo{
		Left:  leftLabel,
		Right: rightLabel,
	})
	return nil
}

// sourceText renders n's covering Fragment text, or "" for a nil node (an
// Insert's Before or a Delete's After).
func sourceText(n astcore.Node) string {
	if n == nil {
		return ""
	}
	return n.Fragment().Text()
}

// StatsSummary renders a single colorized line summarizing stats: the
// count of nodes changed and the percentage of the tree it represents,
// colored green for a small change, yellow for a moderate one, red for a
// large one - the same traffic-light convention the teacher's deleted
// format.go used for its Stats pretty-printer.
func StatsSummary(stats astcore.Stats) string {
	frac := stats.PctChanged()
	color := ansiGreen
	switch {
	case frac > 0.5:
		color = ansiRed
	case frac > 0.1:
		color = ansiYellow
	}
	changed := stats.Replaced + stats.Inserted + stats.Deleted
	total := stats.Left
	if stats.Right > total {
		total = stats.Right
	}
	return fmt.Sprintf("%s%d/%d nodes changed (%.1f%%), %d moved%s", color, changed, total, frac*100, stats.Moved, ansiReset)
}

// WriteStatsSummary writes StatsSummary(stats) to w followed by a newline.
func WriteStatsSummary(w io.Writer, stats astcore.Stats) error {
	if _, err := fmt.Fprintln(w, StatsSummary(stats)); err != nil {
		return fmt.Errorf("astreport: write stats: %w", err)
	}
	return nil
}
