// Package snapshot parses XML dumps of a UI Automation tree and serves
// them as a read-only element provider. Snapshots are what the bridge's
// hierarchy endpoint returns and what the CLI resolves against offline;
// they are also the synthetic trees used throughout the engine's tests.
//
// Snapshot format: one XML element per UI element, tag name = control type,
// with optional Name, AutomationId and ClassName attributes:
//
//	<Window Name="Settings">
//	  <Pane ClassName="SettingsPane">
//	    <Button AutomationId="okBtn" Name="Ok"/>
//	  </Pane>
//	</Window>
package snapshot

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Element is one node of a parsed snapshot. It implements core.Element.
type Element struct {
	Children []*Element
	Parent   *Element
	Depth    int

	name         string
	automationID string
	className    string
	controlType  core.ControlType
}

// Name returns the element's visible name.
func (e *Element) Name() string { return e.name }

// ControlType returns the element's control type.
func (e *Element) ControlType() core.ControlType { return e.controlType }

// AutomationID returns the developer-assigned automation ID.
func (e *Element) AutomationID() string { return e.automationID }

// ClassName returns the framework class name.
func (e *Element) ClassName() string { return e.className }

// String renders the element like a locator predicate, for CLI output.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteString(e.controlType.String())
	if e.name != "" {
		fmt.Fprintf(&b, " %q", e.name)
	}
	if e.automationID != "" {
		fmt.Fprintf(&b, " automationId=%s", e.automationID)
	}
	if e.className != "" {
		fmt.Fprintf(&b, " className=%s", e.className)
	}
	return b.String()
}

// Parse parses snapshot XML and returns the root element.
func Parse(xmlData string) (*Element, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlData))

	var parseElement func() (*Element, error)
	parseElement = func() (*Element, error) {
		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			switch t := token.(type) {
			case xml.StartElement:
				ct, err := core.ParseControlType(t.Name.Local)
				if err != nil {
					return nil, err
				}

				elem := &Element{controlType: ct}
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "Name":
						elem.name = attr.Value
					case "AutomationId":
						elem.automationID = attr.Value
					case "ClassName":
						elem.className = attr.Value
					}
				}

				// Parse children until the matching end tag.
				for {
					child, err := parseElement()
					if err != nil {
						return nil, err
					}
					if child == nil {
						break
					}
					elem.Children = append(elem.Children, child)
				}

				return elem, nil

			case xml.EndElement:
				return nil, nil
			}
		}
	}

	root, err := parseElement()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("invalid snapshot: no elements found")
	}

	link(root, nil, 0)
	return root, nil
}

// ParseFile parses a snapshot XML file.
func ParseFile(path string) (*Element, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is a user-provided snapshot file
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(string(data))
}

// link assigns parent references and depths across the tree.
func link(elem *Element, parent *Element, depth int) {
	elem.Parent = parent
	elem.Depth = depth
	for _, child := range elem.Children {
		link(child, elem, depth+1)
	}
}

// walk visits the subtree below elem in document order (pre-order),
// excluding elem itself. Returning false from fn stops the walk.
func walk(elem *Element, fn func(*Element) bool) bool {
	for _, child := range elem.Children {
		if !fn(child) {
			return false
		}
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// Provider serves a parsed snapshot as a core.Provider. Document order is
// the stable traversal order required by the resolver.
type Provider struct{}

// NewProvider creates a snapshot provider.
func NewProvider() *Provider {
	return &Provider{}
}

// FindFirstDescendant returns the first matching descendant in document
// order, or (nil, nil) when nothing matches.
func (p *Provider) FindFirstDescendant(_ context.Context, root core.Element, f core.Filter) (core.Element, error) {
	elem, err := snapshotElement(root)
	if err != nil {
		return nil, err
	}

	var found *Element
	walk(elem, func(e *Element) bool {
		if f.Matches(e) {
			found = e
			return false
		}
		return true
	})
	if found == nil {
		return nil, nil
	}
	return found, nil
}

// FindAllDescendants returns all matching descendants in document order.
func (p *Provider) FindAllDescendants(_ context.Context, root core.Element, f core.Filter) ([]core.Element, error) {
	elem, err := snapshotElement(root)
	if err != nil {
		return nil, err
	}

	var result []core.Element
	walk(elem, func(e *Element) bool {
		if f.Matches(e) {
			result = append(result, e)
		}
		return true
	})
	return result, nil
}

func snapshotElement(el core.Element) (*Element, error) {
	elem, ok := el.(*Element)
	if !ok {
		return nil, fmt.Errorf("snapshot provider cannot search %T elements", el)
	}
	return elem, nil
}
