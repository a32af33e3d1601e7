// Package astjson encodes and decodes astcore trees (and the edit actions
// produced by diffing two of them) as JSON, and persists them to disk
// crash-safely.
//
// Wire shape:
//
//	Document := {"root": WireNode, "language"?: string}
//	WireNode := {"type": string, "data"?: string, "children"?: []WireNode}
//
// Action nodes (Insert/Replace/Delete/Hole) produced by astcore's DiffTree
// builder round-trip as a distinguished "type" tag plus whatever extra
// fields that action needs: Insert/Replace/Delete carry a nested
// "prototype" (and, for Replace, "after"); Hole carries its numeric "number"
// and "constraint".
package astjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/cqfn/astranaut-go"
)

const (
	kindInsert  = "Insert"
	kindReplace = "Replace"
	kindDelete  = "Delete"
	kindHole    = "Hole"
)

// wireNode is the JSON shape for an ordinary prototype node or an action
// node; which fields are populated depends on Type.
type wireNode struct {
	Type       string      `json:"type"`
	Data       string      `json:"data,omitempty"`
	Children   []*wireNode `json:"children,omitempty"`
	Number     int         `json:"number,omitempty"`
	Constraint string      `json:"constraint,omitempty"`
	Prototype  *wireNode   `json:"prototype,omitempty"`
	After      *wireNode   `json:"after,omitempty"`
}

// Document is the top-level JSON document: a root node plus an optional
// language tag identifying which Registry/Factory set produced it.
type Document struct {
	Root     astcore.Node
	Language string
}

type wireDocument struct {
	Root     *wireNode `json:"root"`
	Language string    `json:"language,omitempty"`
}

// Codec encodes/decodes against a Registry. The zero Codec uses
// astcore.DefaultRegistry.
type Codec struct {
	Registry *astcore.Registry
}

// NewCodec constructs a Codec bound to registry. A nil registry defaults to
// astcore.DefaultRegistry.
func NewCodec(registry *astcore.Registry) *Codec {
	return &Codec{Registry: registry}
}

func (c *Codec) registry() *astcore.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return astcore.DefaultRegistry
}

// Marshal encodes doc as JSON.
func (c *Codec) Marshal(doc Document) ([]byte, error) {
	w, err := toWire(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("astjson: marshal: %w", err)
	}
	out, err := json.Marshal(wireDocument{Root: w, Language: doc.Language})
	if err != nil {
		return nil, fmt.Errorf("astjson: marshal: %w", err)
	}
	return out, nil
}

// Unmarshal decodes data into a Document, resolving type names through the
// Codec's Registry.
func (c *Codec) Unmarshal(data []byte) (Document, error) {
	var wd wireDocument
	if err := json.Unmarshal(data, &wd); err != nil {
		return Document{}, fmt.Errorf("astjson: unmarshal: %w", err)
	}
	if wd.Root == nil {
		return Document{}, fmt.Errorf("astjson: unmarshal: missing root")
	}
	root, err := c.fromWire(wd.Root)
	if err != nil {
		return Document{}, fmt.Errorf("astjson: unmarshal: %w", err)
	}
	return Document{Root: root, Language: wd.Language}, nil
}

func toWire(n astcore.Node) (*wireNode, error) {
	if n == nil {
		return nil, nil
	}
	switch a := n.(type) {
	case *astcore.Insert:
		proto, err := toWire(a.Inserted())
		if err != nil {
			return nil, err
		}
		return &wireNode{Type: kindInsert, Prototype: proto}, nil
	case *astcore.Replace:
		before, err := toWire(a.Before())
		if err != nil {
			return nil, err
		}
		after, err := toWire(a.After())
		if err != nil {
			return nil, err
		}
		return &wireNode{Type: kindReplace, Prototype: before, After: after}, nil
	case *astcore.Delete:
		proto, err := toWire(a.Deleted())
		if err != nil {
			return nil, err
		}
		return &wireNode{Type: kindDelete, Prototype: proto}, nil
	case *astcore.Hole:
		return &wireNode{Type: kindHole, Number: a.ID(), Constraint: a.Constraint()}, nil
	}

	children := n.Children()
	wc := make([]*wireNode, 0, len(children))
	for _, ch := range children {
		w, err := toWire(ch)
		if err != nil {
			return nil, err
		}
		wc = append(wc, w)
	}
	return &wireNode{Type: n.Type().Name(), Data: n.Data(), Children: wc}, nil
}

func (c *Codec) fromWire(w *wireNode) (astcore.Node, error) {
	if w == nil {
		return nil, nil
	}
	switch w.Type {
	case kindInsert:
		proto, err := c.fromWire(w.Prototype)
		if err != nil {
			return nil, err
		}
		return astcore.NewInsert(proto), nil
	case kindReplace:
		before, err := c.fromWire(w.Prototype)
		if err != nil {
			return nil, err
		}
		after, err := c.fromWire(w.After)
		if err != nil {
			return nil, err
		}
		return astcore.NewReplace(before, after), nil
	case kindDelete:
		proto, err := c.fromWire(w.Prototype)
		if err != nil {
			return nil, err
		}
		return astcore.NewDelete(proto), nil
	case kindHole:
		return astcore.NewHole(w.Number, w.Constraint), nil
	}

	children := make([]astcore.Node, 0, len(w.Children))
	for _, wc := range w.Children {
		ch, err := c.fromWire(wc)
		if err != nil {
			return nil, err
		}
		children = append(children, ch)
	}

	reg := c.registry()
	if f, ok := reg.Factory(w.Type); ok {
		return f.Create(astcore.Config{Data: w.Data, Children: children})
	}
	typ, ok := reg.Type(w.Type)
	if !ok {
		return nil, fmt.Errorf("astjson: no Type or Factory registered for %q", w.Type)
	}
	return typ.Build(astcore.Config{Data: w.Data, Children: children})
}

// Marshal encodes doc using astcore.DefaultRegistry.
func Marshal(doc Document) ([]byte, error) { return NewCodec(nil).Marshal(doc) }

// Unmarshal decodes data using astcore.DefaultRegistry.
func Unmarshal(data []byte) (Document, error) { return NewCodec(nil).Unmarshal(data) }

// SaveFile encodes doc and writes it to path crash-safely: the new content
// is written to a temporary file in the same directory, then renamed over
// path, so a concurrent reader or a crash mid-write never observes a
// truncated file.
func (c *Codec) SaveFile(path string, doc Document) error {
	data, err := c.Marshal(doc)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("astjson: save %s: %w", path, err)
	}
	return nil
}

// LoadFile reads and decodes the document at path.
func (c *Codec) LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("astjson: load %s: %w", path, err)
	}
	return c.Unmarshal(data)
}

// SaveFile encodes doc and writes it to path using astcore.DefaultRegistry.
func SaveFile(path string, doc Document) error { return NewCodec(nil).SaveFile(path, doc) }

// LoadFile reads and decodes the document at path using
// astcore.DefaultRegistry.
func LoadFile(path string) (Document, error) { return NewCodec(nil).LoadFile(path) }
