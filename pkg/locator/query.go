// Package locator parses compact locator strings into structured queries.
//
// Parsing is a pure function with no tree access: the resolver package
// evaluates the resulting Query against a live element tree.
package locator

import (
	"fmt"
	"strings"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Kind discriminates the resolution strategy of a query segment.
type Kind int

// Query kinds.
const (
	// KindAttribute matches descendants by conjunctive attribute equality.
	KindAttribute Kind = iota

	// KindPath is an attribute match originating from a path expression.
	// Path segments always carry a control type.
	KindPath

	// KindDescendantByOrdinal scans the anchor's full subtree counting
	// elements whose control type matches and whose name contains a
	// partial text, selecting the n-th counted element. This strategy
	// exists because equality predicates cannot express partial matches
	// on dynamically suffixed or truncated names.
	KindDescendantByOrdinal
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindPath:
		return "path"
	case KindDescendantByOrdinal:
		return "descendantByOrdinal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Query is the parsed form of one locator segment. A query's lifetime is a
// single resolution call; locator strings are re-parsed fresh on every call.
type Query struct {
	Kind Kind

	// ControlType filters by element category. Always set for path and
	// descendant-by-ordinal segments; optional for attribute segments.
	ControlType core.ControlType

	// Constraints are conjunctive attribute equality requirements. Keys are
	// unique per segment; declaration order is preserved but carries no
	// semantic weight.
	Constraints []core.Constraint

	// Ordinal is the 1-based position among all elements matching the other
	// parts of the segment. Zero means "first match" semantics.
	Ordinal int

	// Partial is the substring a name must contain. Only set for
	// KindDescendantByOrdinal.
	Partial string

	// Next is the sub-query applied to this segment's result, scoped to its
	// descendants. Nil for the final segment.
	Next *Query
}

// Filter converts the segment into a provider search filter.
func (q *Query) Filter() core.Filter {
	return core.Filter{
		ControlType: q.ControlType,
		Constraints: q.Constraints,
	}
}

// last returns the final segment of the chain.
func (q *Query) last() *Query {
	cur := q
	for cur.Next != nil {
		cur = cur.Next
	}
	return cur
}

// Describe returns a compact human-readable rendering of the segment,
// used in error details and CLI output.
func (q *Query) Describe() string {
	var b strings.Builder
	if q.Kind == KindDescendantByOrdinal {
		fmt.Fprintf(&b, "%s[name*=%q][%d]", q.ControlType, q.Partial, q.Ordinal)
		return b.String()
	}
	if q.ControlType != core.ControlTypeNone {
		b.WriteString(q.ControlType.String())
	} else {
		b.WriteString("*")
	}
	for _, c := range q.Constraints {
		fmt.Fprintf(&b, "[@%s=%q]", c.Attr, c.Value)
	}
	if q.Ordinal > 0 {
		fmt.Fprintf(&b, "[%d]", q.Ordinal)
	}
	return b.String()
}

// DescribeChain renders the whole query chain.
func (q *Query) DescribeChain() string {
	parts := make([]string, 0, 2)
	for cur := q; cur != nil; cur = cur.Next {
		parts = append(parts, cur.Describe())
	}
	return strings.Join(parts, " / ")
}
