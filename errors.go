package astcore

import (
	"fmt"
	"log/slog"
)

// InvariantViolation is raised (via panic, never returned) when a mapper's
// own book-keeping is inconsistent - e.g. a node marked mapped a second
// time. It signals a programmer bug in a Mapper implementation, never a
// property of the input trees; ordinary mapping failures degrade to a
// Replace or a root-level wholesale replace instead of reaching here.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("astcore: invariant %s violated: %s", e.Invariant, e.Detail)
}

func panicInvariant(invariant, detail string) {
	slog.Error("astcore: invariant violation", "invariant", invariant, "detail", detail)
	panic(&InvariantViolation{Invariant: invariant, Detail: detail})
}
