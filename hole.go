package astcore

// holeType is the synthetic type every Hole reports through the Node
// interface. It carries no builder - a Hole is never itself constructed
// via Type.Build, only substituted away by Pattern.Apply.
var holeType = NewType("Hole", nil, nil, nil, nil)

// Hole is a typed wildcard slot in a Pattern: it matches any candidate
// node whose type belongs to Constraint (empty meaning any type at all),
// binding that candidate to ID. Two holes sharing an ID must match the
// same subtree wherever they recur in one pattern.
type Hole struct {
	id         int
	constraint string
}

// NewHole constructs a hole with the given numeric id and type constraint
// ("" for unconstrained).
func NewHole(id int, constraint string) *Hole {
	return &Hole{id: id, constraint: constraint}
}

// ID returns the hole's binding id.
func (h *Hole) ID() int { return h.id }

// Constraint returns the type-group name candidates must belong to, or ""
// if any type matches.
func (h *Hole) Constraint() string { return h.constraint }

func (h *Hole) Type() *Type        { return holeType }
func (h *Hole) Data() string       { return "" }
func (h *Hole) Children() []Node   { return nil }
func (h *Hole) Fragment() Fragment { return EmptyFragment() }
