// Package core defines the shared contracts of the automation engine:
// element handles, the tree provider and actor interfaces, control types,
// and the structured error taxonomy.
package core

import "context"

// Element is an opaque handle into the live UI tree. Handles are owned by
// the tree provider and are only borrowed for the duration of a single
// resolution call; they must never be cached across calls.
type Element interface {
	// Name returns the element's visible name (UIA Name property).
	Name() string

	// ControlType returns the element's control type.
	ControlType() ControlType

	// AutomationID returns the developer-assigned automation ID, if any.
	AutomationID() string

	// ClassName returns the underlying framework class name, if any.
	ClassName() string
}

// Attribute names an element property a locator can constrain.
type Attribute string

// Attributes recognized in locator constraints.
const (
	AttrAutomationID Attribute = "automationId"
	AttrClassName    Attribute = "className"
	AttrText         Attribute = "text"
)

// Constraint is a single attribute equality requirement.
type Constraint struct {
	Attr  Attribute
	Value string
}

// Filter describes which descendants a provider search should return.
// All parts are conjunctive: an element matches only if the control type
// (when set) and every constraint hold.
type Filter struct {
	ControlType ControlType // ControlTypeNone means any type
	Constraints []Constraint
}

// Matches reports whether el satisfies every part of the filter.
func (f Filter) Matches(el Element) bool {
	if f.ControlType != ControlTypeNone && el.ControlType() != f.ControlType {
		return false
	}
	for _, c := range f.Constraints {
		switch c.Attr {
		case AttrAutomationID:
			if el.AutomationID() != c.Value {
				return false
			}
		case AttrClassName:
			if el.ClassName() != c.Value {
				return false
			}
		case AttrText:
			if el.Name() != c.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Provider searches the live UI tree. Implementations: snapshot (in-memory
// XML dumps), bridge (HTTP to a host automation server).
//
// Both methods search the full subtree below root, excluding root itself.
// FindAllDescendants must return elements in a stable, deterministic order
// across repeated calls against an unchanged tree.
type Provider interface {
	// FindFirstDescendant returns the first descendant matching the filter,
	// or (nil, nil) when nothing matches.
	FindFirstDescendant(ctx context.Context, root Element, f Filter) (Element, error)

	// FindAllDescendants returns all descendants matching the filter.
	FindAllDescendants(ctx context.Context, root Element, f Filter) ([]Element, error)
}

// Actor performs UI actions on resolved elements. Every method is a single
// direct call into the host automation API; no resolution logic lives here.
type Actor interface {
	Click(ctx context.Context, el Element) error
	DoubleClick(ctx context.Context, el Element) error
	RightClick(ctx context.Context, el Element) error
	Focus(ctx context.Context, el Element) error

	// Text reads the element's current text content.
	Text(ctx context.Context, el Element) (string, error)

	// SetText replaces the element's text content.
	SetText(ctx context.Context, el Element, text string) error

	// Toggle flips a toggleable element (checkbox, switch).
	Toggle(ctx context.Context, el Element) error

	// ToggleState reads whether a toggleable element is on.
	ToggleState(ctx context.Context, el Element) (bool, error)

	// PressKey sends a named key to the focused element.
	PressKey(ctx context.Context, key string) error

	// Screenshot captures the current screen as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}
