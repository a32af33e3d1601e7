package astcore

// DiffItemKind tags which kind of slot an item occupies inside a DiffNode's
// ordered child-item list.
type DiffItemKind int

const (
	// ItemNode is a nested DiffNode: this position is structurally
	// unchanged, recurse into it.
	ItemNode DiffItemKind = iota
	ItemInsert
	ItemReplace
	ItemDelete
)

// DiffItem is one slot in a DiffNode's child-item list: either a nested
// DiffNode or one of the Insert/Replace/Delete action items. Action items
// are modeled as a tagged sum rather than Node subclasses (see astcore's
// design notes); Before/After project this slot for DiffNode's own
// Before()/After() reconstruction.
type DiffItem interface {
	Kind() DiffItemKind
	Before() Node
	After() Node
}

// insertType, replaceType and deleteType are the synthetic types the
// Insert/Replace/Delete action nodes report through the Node interface.
// Their ChildDescriptors place no type constraint ("" matches any group)
// but do fix arity: Insert and Delete each wrap exactly one node, Replace
// exactly two.
var (
	insertType  = NewType("Insert", []ChildDescriptor{{Type: "", Optional: false}}, nil, nil, nil)
	replaceType = NewType("Replace", []ChildDescriptor{{Type: "", Optional: false}, {Type: "", Optional: false}}, nil, nil, nil)
	deleteType  = NewType("Delete", []ChildDescriptor{{Type: "", Optional: false}}, nil, nil, nil)
)

// Insert is an action node: a single right-tree node entering the tree. As
// a DiffItem it contributes nothing to Before() and its wrapped node to
// After().
type Insert struct {
	node Node
}

// NewInsert wraps n as an Insert action.
func NewInsert(n Node) *Insert { return &Insert{node: n} }

func (a *Insert) Kind() DiffItemKind { return ItemInsert }
func (a *Insert) Before() Node       { return nil }
func (a *Insert) After() Node        { return a.node }

// Inserted returns the node being inserted.
func (a *Insert) Inserted() Node { return a.node }

func (a *Insert) Type() *Type        { return insertType }
func (a *Insert) Data() string       { return "" }
func (a *Insert) Children() []Node   { return []Node{a.node} }
func (a *Insert) Fragment() Fragment { return a.node.Fragment() }

// Replace is an action node pairing a left-tree "before" with a right-tree
// "after". As a DiffItem it contributes before to Before() and after to
// After().
type Replace struct {
	before, after Node
}

// NewReplace wraps a before/after pair as a Replace action.
func NewReplace(before, after Node) *Replace { return &Replace{before: before, after: after} }

func (a *Replace) Kind() DiffItemKind { return ItemReplace }
func (a *Replace) Before() Node       { return a.before }
func (a *Replace) After() Node        { return a.after }

func (a *Replace) Type() *Type        { return replaceType }
func (a *Replace) Data() string       { return "" }
func (a *Replace) Children() []Node   { return []Node{a.before, a.after} }
func (a *Replace) Fragment() Fragment { return a.before.Fragment() }

// Delete is an action node: a single left-tree node with no right-tree
// counterpart. As a DiffItem it contributes its wrapped node to Before()
// and nothing to After().
type Delete struct {
	node Node
}

// NewDelete wraps n as a Delete action.
func NewDelete(n Node) *Delete { return &Delete{node: n} }

func (a *Delete) Kind() DiffItemKind { return ItemDelete }
func (a *Delete) Before() Node       { return a.node }
func (a *Delete) After() Node        { return nil }

// Deleted returns the node being deleted.
func (a *Delete) Deleted() Node { return a.node }

func (a *Delete) Type() *Type        { return deleteType }
func (a *Delete) Data() string       { return "" }
func (a *Delete) Children() []Node   { return []Node{a.node} }
func (a *Delete) Fragment() Fragment { return a.node.Fragment() }
