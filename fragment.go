package astcore

import "fmt"

// Position locates a single point inside a Source's text.
type Position struct {
	Source Source
	Offset int
	Line   int
	Column int
}

// String renders a position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Source regenerates the text a Fragment spans. It is satisfied by whatever
// parser or converter produced the nodes; astcore never constructs one
// itself, it only stores and forwards the reference a Builder was given.
type Source interface {
	// Text returns the text between two offsets produced by this Source.
	Text(beginOffset, endOffset int) string
	// Name identifies the source, typically a file path, for diagnostics.
	Name() string
}

// Fragment is a source span [begin, end), begin <= end, both positions from
// the same Source. The empty fragment (EmptyFragment) is the singleton used
// whenever a node has no associated source span; the zero Fragment value is
// not itself empty, NewBuiltNode swaps it for the empty fragment.
type Fragment struct {
	Begin, End Position
	empty      bool
}

// emptyFragment is returned by EmptyFragment and is what NewBuiltNode stores
// when no fragment is supplied.
var emptyFragment = Fragment{empty: true}

// EmptyFragment returns the shared empty-fragment singleton.
func EmptyFragment() Fragment { return emptyFragment }

// IsEmpty reports whether f carries no source span.
func (f Fragment) IsEmpty() bool { return f.empty }

// NewFragment builds a fragment between two positions of the same source.
// It panics if begin and end come from different sources or begin is after
// end - this is a programmer error, not a data error (see astcore's error
// taxonomy), so it is not reported as a Go error value.
func NewFragment(begin, end Position) Fragment {
	if begin.Source != end.Source {
		panic("astcore: fragment positions from different sources")
	}
	if begin.Offset > end.Offset {
		panic("astcore: fragment begin after end")
	}
	return Fragment{Begin: begin, End: end}
}

// Text regenerates the source text this fragment spans, delegating to the
// underlying Source. It returns "" for the empty fragment.
func (f Fragment) Text() string {
	if f.empty || f.Begin.Source == nil {
		return ""
	}
	return f.Begin.Source.Text(f.Begin.Offset, f.End.Offset)
}

func (f Fragment) String() string {
	if f.empty {
		return "<empty>"
	}
	return fmt.Sprintf("%s-%s", f.Begin, f.End)
}
