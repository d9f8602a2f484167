package compare

import (
	"fmt"
	"strings"

	"descriptor-translator/internal/common"
)

// ChangeKind classifies a Difference.
type ChangeKind int

const (
	// Added is present only in the generated tree.
	Added ChangeKind = iota
	// Removed is present only in the expected tree.
	Removed
	// TypeChanged holds values of different kinds (map, list, string, ...).
	TypeChanged
	// ValueChanged holds different scalars of the same kind.
	ValueChanged
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case TypeChanged:
		return "type changed"
	case ValueChanged:
		return "value changed"
	default:
		return common.UnknownStr
	}
}

// Difference is one structural mismatch.
type Difference struct {
	Path      string
	Kind      ChangeKind
	Expected  any
	Generated any
}

func (d Difference) String() string {
	switch d.Kind {
	case Added:
		return fmt.Sprintf("%s: %s %v", d.Path, d.Kind, d.Generated)
	case Removed:
		return fmt.Sprintf("%s: %s %v", d.Path, d.Kind, d.Expected)
	default:
		return fmt.Sprintf("%s: %s from %v to %v", d.Path, d.Kind, d.Expected, d.Generated)
	}
}

// Report is the outcome of a comparison.
type Report struct {
	Differences []Difference
	// Diff is a human-readable diff of the normalized trees (-expected +generated).
	Diff string
}

// Equal reports whether the trees are structurally equal.
func (r *Report) Equal() bool {
	return len(r.Differences) == 0
}

// Count returns the number of differences of kind k.
func (r *Report) Count(k ChangeKind) int {
	n := 0

	for _, d := range r.Differences {
		if d.Kind == k {
			n++
		}
	}

	return n
}

func (r *Report) String() string {
	if r.Equal() {
		return "descriptors are equal"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%d difference(s): %d added, %d removed, %d type changed, %d value changed",
		len(r.Differences), r.Count(Added), r.Count(Removed), r.Count(TypeChanged), r.Count(ValueChanged))

	for _, d := range r.Differences {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}

	return sb.String()
}
