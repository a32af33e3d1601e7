// Package astdraft parses and serializes the textual draft-node grammar:
//
//	Tree      := Name ('<' '"' Data '"' '>')? ('(' Child (',' Child)* ')')?
//	Name      := [A-Za-z]+
//	Data      := any characters except '"'
//	Child     := Tree
//
// Parsed nodes are built through an astcore.Registry, so a draft string
// resolves type names the same way astjson does - no language-specific
// switch statement, just a lookup by the name found on the wire. A
// registered Factory is tried first, then a registered Type; a name with
// neither falls back to a fresh unconstrained astcore.Type, built anew for
// each such node, so drafts stay usable for ad-hoc tests without a real
// language's type catalog.
package astdraft

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cqfn/astranaut-go"
)

// Parser parses draft strings against a Registry. The zero Parser uses
// astcore.DefaultRegistry.
type Parser struct {
	Registry *astcore.Registry
}

// NewParser constructs a Parser bound to registry. A nil registry defaults
// to astcore.DefaultRegistry.
func NewParser(registry *astcore.Registry) *Parser {
	return &Parser{Registry: registry}
}

func (p *Parser) registry() *astcore.Registry {
	if p.Registry != nil {
		return p.Registry
	}
	return astcore.DefaultRegistry
}

// Parse parses s as a single Tree per the draft grammar. It returns an
// error only for a completely empty or name-less input; malformed data
// (`<$>`, an unterminated quote) silently degrades to empty data, and
// unknown characters inside a children list are skipped up to the next `,`
// or `)`, per the grammar's "best effort" design.
func (p *Parser) Parse(s string) (astcore.Node, error) {
	ps := &parseState{src: s, parser: p}
	ps.skipSpace()
	n, err := ps.parseTree()
	if err != nil {
		return nil, fmt.Errorf("astdraft: %w", err)
	}
	return n, nil
}

// Parse parses s using astcore.DefaultRegistry.
func Parse(s string) (astcore.Node, error) {
	return NewParser(nil).Parse(s)
}

type parseState struct {
	src    string
	pos    int
	parser *Parser
}

func (ps *parseState) skipSpace() {
	for ps.pos < len(ps.src) && (ps.src[ps.pos] == ' ' || ps.src[ps.pos] == '\t' || ps.src[ps.pos] == '\n') {
		ps.pos++
	}
}

func (ps *parseState) parseTree() (astcore.Node, error) {
	name := ps.parseName()
	if name == "" {
		return nil, fmt.Errorf("expected a node name at offset %d", ps.pos)
	}

	data := ps.parseData()

	var children []astcore.Node
	if ps.pos < len(ps.src) && ps.src[ps.pos] == '(' {
		ps.pos++
		for {
			ps.skipSpace()
			if ps.pos >= len(ps.src) {
				break
			}
			if ps.src[ps.pos] == ')' {
				ps.pos++
				break
			}
			child, err := ps.parseTree()
			if err != nil {
				ps.skipToDelimiter()
				continue
			}
			children = append(children, child)
			ps.skipSpace()
			if ps.pos < len(ps.src) && ps.src[ps.pos] == ',' {
				ps.pos++
				continue
			}
			if ps.pos < len(ps.src) && ps.src[ps.pos] == ')' {
				ps.pos++
				break
			}
		}
	}

	return ps.build(name, data, children)
}

func (ps *parseState) parseName() string {
	start := ps.pos
	for ps.pos < len(ps.src) && isNameChar(ps.src[ps.pos]) {
		ps.pos++
	}
	return ps.src[start:ps.pos]
}

func isNameChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// parseData consumes an optional `<"...">` suffix, returning its NFC-
// normalized content ("" on any malformed shape: no opening `<`, a missing
// quote, or an unterminated literal - the grammar's "silently degrades to
// empty data" rule).
func (ps *parseState) parseData() string {
	if ps.pos >= len(ps.src) || ps.src[ps.pos] != '<' {
		return ""
	}
	save := ps.pos
	ps.pos++
	if ps.pos >= len(ps.src) || ps.src[ps.pos] != '"' {
		ps.pos = save
		return ""
	}
	ps.pos++
	start := ps.pos
	for ps.pos < len(ps.src) && ps.src[ps.pos] != '"' {
		ps.pos++
	}
	if ps.pos >= len(ps.src) {
		ps.pos = save
		return ""
	}
	data := ps.src[start:ps.pos]
	ps.pos++
	if ps.pos >= len(ps.src) || ps.src[ps.pos] != '>' {
		ps.pos = save
		return ""
	}
	ps.pos++
	return norm.NFC.String(data)
}

// skipToDelimiter advances past whatever caused parseTree to fail, up to
// the next `,` or `)` at this nesting level, per the grammar's "unknown
// characters inside a children list skip to the next delimiter" rule.
func (ps *parseState) skipToDelimiter() {
	for ps.pos < len(ps.src) && ps.src[ps.pos] != ',' && ps.src[ps.pos] != ')' {
		ps.pos++
	}
	if ps.pos < len(ps.src) && ps.src[ps.pos] == ',' {
		ps.pos++
	} else if ps.pos < len(ps.src) && ps.src[ps.pos] == ')' {
		ps.pos++
	}
}

func (ps *parseState) build(name, data string, children []astcore.Node) (astcore.Node, error) {
	reg := ps.parser.registry()
	if f, ok := reg.Factory(name); ok {
		return f.Create(astcore.Config{Data: data, Children: children})
	}
	typ, ok := reg.Type(name)
	if !ok {
		typ = draftType(name)
	}
	return typ.Build(astcore.Config{Data: data, Children: children})
}

// draftType returns an unconstrained, always-building Type for a name seen
// on the wire with no registered Factory or Type - enough to round-trip a
// draft string without a real language's type catalog.
func draftType(name string) *astcore.Type {
	var t *astcore.Type
	t = astcore.NewType(name, nil, nil, nil, func(cfg astcore.Config) (astcore.Node, error) {
		return astcore.NewBuiltNode(t, cfg), nil
	})
	return t
}

// Serialize renders n back into draft-grammar text: Name, an optional
// `<"Data">` suffix when n.Data() is non-empty, and a parenthesized,
// comma-separated child list when n has children.
func Serialize(n astcore.Node) string {
	var b strings.Builder
	writeTree(&b, n)
	return b.String()
}

func writeTree(b *strings.Builder, n astcore.Node) {
	b.WriteString(n.Type().Name())
	if n.Data() != "" {
		b.WriteString(`<"`)
		b.WriteString(n.Data())
		b.WriteString(`">`)
	}
	children := n.Children()
	if len(children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			b.WriteByte(',')
		}
		writeTree(b, c)
	}
	b.WriteByte(')')
}
