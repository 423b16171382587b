package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Element is a bridge-side element handle. Its properties are captured at
// discovery time; the handle itself stays valid only as long as the bridge
// keeps the underlying UIA reference alive.
type Element struct {
	id           string
	name         string
	automationID string
	className    string
	controlType  core.ControlType
	client       *Client
}

// ID returns the bridge element ID.
func (e *Element) ID() string { return e.id }

// Name returns the element's visible name.
func (e *Element) Name() string { return e.name }

// ControlType returns the element's control type.
func (e *Element) ControlType() core.ControlType { return e.controlType }

// AutomationID returns the developer-assigned automation ID.
func (e *Element) AutomationID() string { return e.automationID }

// ClassName returns the framework class name.
func (e *Element) ClassName() string { return e.className }

// elementRecord is the wire form of an element handle.
type elementRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ControlType  string `json:"controlType"`
	AutomationID string `json:"automationId"`
	ClassName    string `json:"className"`
}

func (c *Client) toElement(rec elementRecord) (*Element, error) {
	ct, err := core.ParseControlType(rec.ControlType)
	if err != nil {
		return nil, fmt.Errorf("bridge returned element %s: %w", rec.ID, err)
	}
	return &Element{
		id:           rec.ID,
		name:         rec.Name,
		automationID: rec.AutomationID,
		className:    rec.ClassName,
		controlType:  ct,
		client:       c,
	}, nil
}

// findRequest is the wire form of a descendant search.
type findRequest struct {
	Root        string           `json:"root,omitempty"`
	ControlType string           `json:"controlType,omitempty"`
	Constraints []findConstraint `json:"constraints,omitempty"`
}

type findConstraint struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

func (c *Client) findRequest(root core.Element, f core.Filter) (*findRequest, error) {
	req := &findRequest{}
	if root != nil {
		el, ok := root.(*Element)
		if !ok {
			return nil, fmt.Errorf("bridge provider cannot search %T elements", root)
		}
		req.Root = el.id
	}
	if f.ControlType != core.ControlTypeNone {
		req.ControlType = f.ControlType.String()
	}
	for _, con := range f.Constraints {
		req.Constraints = append(req.Constraints, findConstraint{
			Attribute: string(con.Attr),
			Value:     con.Value,
		})
	}
	return req, nil
}

// FindFirstDescendant asks the bridge for the first descendant of root
// matching the filter, or (nil, nil) when nothing matches within the
// bridge's own discovery timeout.
func (c *Client) FindFirstDescendant(ctx context.Context, root core.Element, f core.Filter) (core.Element, error) {
	if c.sessionID == "" {
		return nil, core.ErrNoSession
	}

	req, err := c.findRequest(root, f)
	if err != nil {
		return nil, err
	}

	data, err := c.request(ctx, "POST", c.sessionPath("/element"), req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value *elementRecord `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse element response: %w", err)
	}
	if resp.Value == nil || resp.Value.ID == "" {
		return nil, nil
	}

	return c.toElement(*resp.Value)
}

// FindAllDescendants asks the bridge for all matching descendants of root,
// in the bridge's stable tree order.
func (c *Client) FindAllDescendants(ctx context.Context, root core.Element, f core.Filter) ([]core.Element, error) {
	if c.sessionID == "" {
		return nil, core.ErrNoSession
	}

	req, err := c.findRequest(root, f)
	if err != nil {
		return nil, err
	}

	data, err := c.request(ctx, "POST", c.sessionPath("/elements"), req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value []elementRecord `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse elements response: %w", err)
	}

	elements := make([]core.Element, 0, len(resp.Value))
	for _, rec := range resp.Value {
		el, err := c.toElement(rec)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// Windows lists the application's top-level windows.
func (c *Client) Windows(ctx context.Context) ([]core.Element, error) {
	if c.sessionID == "" {
		return nil, core.ErrNoSession
	}

	data, err := c.request(ctx, "GET", c.sessionPath("/windows"), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value []elementRecord `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse windows response: %w", err)
	}

	windows := make([]core.Element, 0, len(resp.Value))
	for _, rec := range resp.Value {
		el, err := c.toElement(rec)
		if err != nil {
			return nil, err
		}
		windows = append(windows, el)
	}
	return windows, nil
}

// ActiveWindow returns the application's current foreground window.
func (c *Client) ActiveWindow(ctx context.Context) (core.Element, error) {
	if c.sessionID == "" {
		return nil, core.ErrNoSession
	}

	data, err := c.request(ctx, "GET", c.sessionPath("/window"), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value *elementRecord `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse window response: %w", err)
	}
	if resp.Value == nil || resp.Value.ID == "" {
		return nil, core.ErrNoWindow
	}

	return c.toElement(*resp.Value)
}
