package locator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Locator syntax markers.
const (
	pathPrefix    = "xpath="
	descendantSep = "/descendant::"
	compoundSep   = ">>>"
)

// simpleKeys are the recognized key=value locator keywords, checked in order.
var simpleKeys = []string{"automationId", "className", "controlType", "text"}

// Parse converts a locator string into a query chain.
//
// Recognized forms:
//
//	automationId=myId                              simple attribute match
//	xpath=//Edit[@text='Name'][2]                  restricted path expression
//	xpath=//Pane[@text='x']/descendant::Button     nested path segments
//	anchor>>>Edit>>>Settings>>>1                   descendant by ordinal
//	Some Text                                      bare string, implies text=
//
// Errors: ErrMalformedLocator, ErrUnknownControlType, ErrInvalidOrdinal.
func Parse(s string) (*Query, error) {
	if s == "" {
		return nil, core.ErrMalformedLocator.WithMessage("empty locator")
	}
	// The compound form takes precedence over everything else, including
	// path parsing of its anchor part.
	if strings.Contains(s, compoundSep) {
		return parseCompound(s)
	}
	if strings.HasPrefix(s, pathPrefix) {
		return parsePath(s[len(pathPrefix):])
	}
	return parseSimple(s)
}

// parseSimple handles key=value locators and the bare-string fallback.
// A key is only recognized when the full keyword immediately precedes the
// first '=': "text=a=b" parses as text with value "a=b", while "foo=bar"
// has no recognized key and falls back to a text match on the whole string.
func parseSimple(s string) (*Query, error) {
	for _, key := range simpleKeys {
		prefix := key + "="
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		value := s[len(prefix):]
		switch key {
		case "controlType":
			ct, err := core.ParseControlType(value)
			if err != nil {
				return nil, err
			}
			return &Query{Kind: KindAttribute, ControlType: ct}, nil
		case "automationId":
			return attributeQuery(core.AttrAutomationID, value), nil
		case "className":
			return attributeQuery(core.AttrClassName, value), nil
		case "text":
			return attributeQuery(core.AttrText, value), nil
		}
	}
	// Bare string: match by visible text.
	return attributeQuery(core.AttrText, s), nil
}

func attributeQuery(attr core.Attribute, value string) *Query {
	return &Query{
		Kind:        KindAttribute,
		Constraints: []core.Constraint{{Attr: attr, Value: value}},
	}
}

// parseCompound handles the triple-delimiter form
// anchor>>>ControlType>>>PartialName>>>Ordinal. The anchor is any
// non-compound locator; the result is the anchor chain with a
// descendant-by-ordinal segment appended.
func parseCompound(s string) (*Query, error) {
	parts := strings.Split(s, compoundSep)
	if len(parts) != 4 {
		return nil, core.ErrMalformedLocator.WithMessage(fmt.Sprintf(
			"compound locator must have the form anchor>>>controlType>>>text>>>index, got %d parts", len(parts)))
	}

	anchor, err := Parse(parts[0])
	if err != nil {
		return nil, err
	}

	ct, err := core.ParseControlType(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	ordinal, err := parseOrdinal(parts[3])
	if err != nil {
		return nil, err
	}

	anchor.last().Next = &Query{
		Kind:        KindDescendantByOrdinal,
		ControlType: ct,
		Partial:     parts[2],
		Ordinal:     ordinal,
	}
	return anchor, nil
}

// parsePath handles the restricted path grammar after the "xpath=" prefix:
//
//	//Tag[@attr='value']...[N](/descendant::Tag...)
func parsePath(expr string) (*Query, error) {
	sc := &scanner{input: expr}

	if !sc.consume("//") {
		return nil, core.ErrMalformedLocator.WithMessage(
			fmt.Sprintf("path expression must start with //, got %q", expr))
	}

	tag := sc.takeUntilAny("[/")
	if tag == "" {
		return nil, core.ErrMalformedLocator.WithMessage("path segment is missing a control type tag")
	}
	ct, err := core.ParseControlType(tag)
	if err != nil {
		return nil, err
	}

	q := &Query{Kind: KindPath, ControlType: ct}
	seen := make(map[core.Attribute]bool)
	haveOrdinal := false

	for sc.peek() == '[' {
		if haveOrdinal {
			return nil, core.ErrMalformedLocator.WithMessage("index predicate must be last in its segment")
		}
		if sc.peekAt(1) == '@' {
			name, value, err := sc.predicate()
			if err != nil {
				return nil, err
			}
			attr, err := attributeName(name)
			if err != nil {
				return nil, err
			}
			if seen[attr] {
				return nil, core.ErrMalformedLocator.WithMessage(
					fmt.Sprintf("duplicate attribute %q in predicate", name))
			}
			seen[attr] = true
			q.Constraints = append(q.Constraints, core.Constraint{Attr: attr, Value: value})
		} else {
			raw, err := sc.bracket()
			if err != nil {
				return nil, err
			}
			ordinal, err := parseOrdinal(raw)
			if err != nil {
				return nil, err
			}
			q.Ordinal = ordinal
			haveOrdinal = true
		}
	}

	if sc.done() {
		return q, nil
	}

	rest := sc.rest()
	if strings.HasPrefix(rest, descendantSep) {
		// Re-render the remainder as a standalone path segment and recurse.
		next, err := parsePath("//" + rest[len(descendantSep):])
		if err != nil {
			return nil, err
		}
		q.Next = next
		return q, nil
	}

	return nil, core.ErrMalformedLocator.WithMessage(
		fmt.Sprintf("unexpected trailing input %q in path expression", rest))
}

// attributeName maps a predicate attribute name to a known attribute.
// Unknown names are rejected rather than silently ignored.
func attributeName(name string) (core.Attribute, error) {
	switch name {
	case "automationId":
		return core.AttrAutomationID, nil
	case "className":
		return core.AttrClassName, nil
	case "text":
		return core.AttrText, nil
	default:
		return "", core.ErrMalformedLocator.WithMessage(
			fmt.Sprintf("unknown attribute %q in predicate, expected automationId, className or text", name))
	}
}

// parseOrdinal parses a 1-based index. Zero and negative values are parse
// errors, not "match nothing" results.
func parseOrdinal(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, core.ErrInvalidOrdinal.WithMessage(
			fmt.Sprintf("locator index %q is not a number", trimmed))
	}
	if n < 1 {
		return 0, core.ErrInvalidOrdinal.WithMessage(
			fmt.Sprintf("locator index must be >= 1, got %d", n))
	}
	return n, nil
}

// scanner is a byte-offset cursor over a path expression.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

// peek returns the current byte, or 0 at end of input.
func (s *scanner) peek() byte {
	return s.peekAt(0)
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.input) {
		return 0
	}
	return s.input[s.pos+offset]
}

// consume advances past prefix if present.
func (s *scanner) consume(prefix string) bool {
	if strings.HasPrefix(s.input[s.pos:], prefix) {
		s.pos += len(prefix)
		return true
	}
	return false
}

// takeUntilAny advances to the first occurrence of any stop byte (or end of
// input) and returns the consumed text.
func (s *scanner) takeUntilAny(stop string) string {
	start := s.pos
	for s.pos < len(s.input) && !strings.ContainsRune(stop, rune(s.input[s.pos])) {
		s.pos++
	}
	return s.input[start:s.pos]
}

// rest returns the unconsumed remainder.
func (s *scanner) rest() string {
	return s.input[s.pos:]
}

// predicate consumes an attribute predicate of the form [@name='value'],
// returning the raw name and value.
func (s *scanner) predicate() (string, string, error) {
	if !s.consume("[@") {
		return "", "", core.ErrMalformedLocator.WithMessage("expected attribute predicate")
	}
	name := s.takeUntilAny("=]")
	if name == "" {
		return "", "", core.ErrMalformedLocator.WithMessage("attribute predicate is missing a name")
	}
	if !s.consume("='") {
		return "", "", core.ErrMalformedLocator.WithMessage(
			fmt.Sprintf("attribute predicate for %q must look like [@%s='value']", name, name))
	}
	end := strings.Index(s.rest(), "']")
	if end < 0 {
		return "", "", core.ErrMalformedLocator.WithMessage(
			fmt.Sprintf("unterminated attribute predicate for %q", name))
	}
	value := s.input[s.pos : s.pos+end]
	s.pos += end + 2
	return name, value, nil
}

// bracket consumes a bare bracketed token like [2] and returns its contents.
func (s *scanner) bracket() (string, error) {
	if !s.consume("[") {
		return "", core.ErrMalformedLocator.WithMessage("expected index predicate")
	}
	end := strings.IndexByte(s.rest(), ']')
	if end < 0 {
		return "", core.ErrMalformedLocator.WithMessage("unterminated index predicate")
	}
	raw := s.input[s.pos : s.pos+end]
	s.pos += end + 1
	return raw, nil
}
