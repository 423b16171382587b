package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// elementPath returns the action path for an element handle.
func (c *Client) elementPath(el core.Element, action string) (string, error) {
	e, ok := el.(*Element)
	if !ok {
		return "", fmt.Errorf("bridge actor cannot drive %T elements", el)
	}
	return c.sessionPath("/element/" + e.id + action), nil
}

func (c *Client) elementAction(ctx context.Context, el core.Element, action string, body interface{}) error {
	if c.sessionID == "" {
		return core.ErrNoSession
	}
	path, err := c.elementPath(el, action)
	if err != nil {
		return err
	}
	_, err = c.request(ctx, "POST", path, body)
	return err
}

// Click performs a left click on the element.
func (c *Client) Click(ctx context.Context, el core.Element) error {
	return c.elementAction(ctx, el, "/click", nil)
}

// DoubleClick performs a double click on the element.
func (c *Client) DoubleClick(ctx context.Context, el core.Element) error {
	return c.elementAction(ctx, el, "/doubleclick", nil)
}

// RightClick performs a right click on the element.
func (c *Client) RightClick(ctx context.Context, el core.Element) error {
	return c.elementAction(ctx, el, "/rightclick", nil)
}

// Focus gives the element keyboard focus.
func (c *Client) Focus(ctx context.Context, el core.Element) error {
	return c.elementAction(ctx, el, "/focus", nil)
}

// Toggle flips a toggleable element.
func (c *Client) Toggle(ctx context.Context, el core.Element) error {
	return c.elementAction(ctx, el, "/toggle", nil)
}

// SetText replaces the element's text content.
func (c *Client) SetText(ctx context.Context, el core.Element, text string) error {
	return c.elementAction(ctx, el, "/value", map[string]string{"text": text})
}

// Text reads the element's current text content.
func (c *Client) Text(ctx context.Context, el core.Element) (string, error) {
	if c.sessionID == "" {
		return "", core.ErrNoSession
	}
	path, err := c.elementPath(el, "/text")
	if err != nil {
		return "", err
	}

	data, err := c.request(ctx, "GET", path, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parse text response: %w", err)
	}
	return resp.Value, nil
}

// ToggleState reads whether a toggleable element is on.
func (c *Client) ToggleState(ctx context.Context, el core.Element) (bool, error) {
	if c.sessionID == "" {
		return false, core.ErrNoSession
	}
	path, err := c.elementPath(el, "/toggle")
	if err != nil {
		return false, err
	}

	data, err := c.request(ctx, "GET", path, nil)
	if err != nil {
		return false, err
	}

	var resp struct {
		Value bool `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("parse toggle response: %w", err)
	}
	return resp.Value, nil
}

// PressKey sends a named key (ENTER, TAB, F5, ...) to the focused element.
func (c *Client) PressKey(ctx context.Context, key string) error {
	if c.sessionID == "" {
		return core.ErrNoSession
	}
	_, err := c.request(ctx, "POST", c.sessionPath("/keys"), map[string]string{"key": key})
	return err
}

// Screenshot captures the current screen as PNG.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	if c.sessionID == "" {
		return nil, core.ErrNoSession
	}

	data, err := c.request(ctx, "GET", c.sessionPath("/screenshot"), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse screenshot response: %w", err)
	}

	png, err := base64.StdEncoding.DecodeString(resp.Value)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return png, nil
}
