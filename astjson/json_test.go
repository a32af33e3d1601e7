package astjson

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cqfn/astranaut-go"
)

var leafType = buildingType("Leaf", nil)
var wrapType = buildingType("Wrap", []astcore.ChildDescriptor{{Type: "", Optional: false}})

// buildingType returns a Type whose Builder constructs a plain node of it.
func buildingType(name string, children []astcore.ChildDescriptor) *astcore.Type {
	var t *astcore.Type
	t = astcore.NewType(name, children, nil, nil, func(cfg astcore.Config) (astcore.Node, error) {
		return astcore.NewBuiltNode(t, cfg), nil
	})
	return t
}

func leaf(data string) astcore.Node {
	n, err := leafType.Build(astcore.Config{Data: data})
	if err != nil {
		panic(err)
	}
	return n
}

func wrap(child astcore.Node) astcore.Node {
	n, err := wrapType.Build(astcore.Config{Children: []astcore.Node{child}})
	if err != nil {
		panic(err)
	}
	return n
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	reg := astcore.NewRegistry()
	reg.RegisterType(leafType)
	reg.RegisterType(wrapType)
	codec := NewCodec(reg)

	original := wrap(leaf("hello"))
	data, err := codec.Marshal(Document{Root: original, Language: "test"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	doc, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Language != "test" {
		t.Fatalf("Language = %q, want %q", doc.Language, "test")
	}
	if !astcore.DeepCompare(doc.Root, original) {
		t.Fatalf("round-tripped root is not DeepCompare-equal to the original")
	}
}

func TestUnmarshalUnknownTypeErrors(t *testing.T) {
	codec := NewCodec(astcore.NewRegistry())
	_, err := codec.Unmarshal([]byte(`{"root":{"type":"Nope"}}`))
	if err == nil {
		t.Fatalf("expected an error for an unregistered type")
	}
}

func TestUnmarshalMissingRootErrors(t *testing.T) {
	codec := NewCodec(astcore.NewRegistry())
	if _, err := codec.Unmarshal([]byte(`{}`)); err == nil {
		t.Fatalf("expected an error for a document with no root")
	}
}

func TestActionNodesRoundTrip(t *testing.T) {
	reg := astcore.NewRegistry()
	reg.RegisterType(leafType)
	codec := NewCodec(reg)

	cases := []astcore.Node{
		astcore.NewInsert(leaf("a")),
		astcore.NewReplace(leaf("a"), leaf("b")),
		astcore.NewDelete(leaf("a")),
		astcore.NewHole(3, "Expression"),
	}

	for _, original := range cases {
		data, err := codec.Marshal(Document{Root: original})
		if err != nil {
			t.Fatalf("Marshal(%T): %v", original, err)
		}
		doc, err := codec.Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal(%T): %v", original, err)
		}
		if !astcore.DeepCompare(doc.Root, original) {
			t.Fatalf("%T did not round-trip: got %#v", original, doc.Root)
		}
	}
}

func TestMarshalProducesExpectedShape(t *testing.T) {
	reg := astcore.NewRegistry()
	reg.RegisterType(leafType)
	data, err := NewCodec(reg).Marshal(Document{Root: wrap(leaf("x")), Language: "lang"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	want := map[string]interface{}{
		"language": "lang",
		"root": map[string]interface{}{
			"type": "Wrap",
			"children": []interface{}{
				map[string]interface{}{"type": "Leaf", "data": "x"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Marshal shape mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalOmitsEmptyLanguage(t *testing.T) {
	reg := astcore.NewRegistry()
	reg.RegisterType(leafType)
	data, err := NewCodec(reg).Marshal(Document{Root: leaf("x")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := raw["language"]; ok {
		t.Fatalf("empty language should be omitted, found a %q key", "language")
	}
}

func TestSaveFileLoadFileRoundTrip(t *testing.T) {
	reg := astcore.NewRegistry()
	reg.RegisterType(leafType)
	reg.RegisterType(wrapType)

	path := filepath.Join(t.TempDir(), "tree.json")
	original := Document{Root: wrap(leaf("payload")), Language: "demo"}

	if err := SaveFile(path, original); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := NewCodec(reg).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Language != original.Language {
		t.Fatalf("Language = %q, want %q", loaded.Language, original.Language)
	}
	if !astcore.DeepCompare(loaded.Root, original.Root) {
		t.Fatalf("loaded root is not DeepCompare-equal to the saved one")
	}
}

func TestLoadFileMissingFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error loading a nonexistent file")
	}
}
