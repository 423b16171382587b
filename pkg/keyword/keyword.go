// Package keyword provides the one-call action surface used by automation
// scripts: each keyword resolves a locator and performs a single action.
// All resolution logic lives in pkg/resolver; keywords stay thin wrappers.
package keyword

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/autolab-dev/uia-runner/pkg/session"
	"github.com/autolab-dev/uia-runner/pkg/wait"
)

// DefaultWaitTimeout bounds WaitUntilExists polling.
const DefaultWaitTimeout = 10 * time.Second

// Library exposes keyword-style operations over a session.
type Library struct {
	session     *session.Session
	waitTimeout time.Duration
}

// Option configures a Library.
type Option func(*Library)

// WithWaitTimeout sets the polling timeout for WaitUntilExists.
func WithWaitTimeout(d time.Duration) Option {
	return func(l *Library) { l.waitTimeout = d }
}

// New creates a keyword library over the given session.
func New(s *session.Session, opts ...Option) *Library {
	l := &Library{
		session:     s,
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Session returns the underlying session.
func (l *Library) Session() *session.Session {
	return l.session
}

// Click resolves the locator and left-clicks the element.
func (l *Library) Click(ctx context.Context, loc string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().Click(ctx, el)
}

// DoubleClick resolves the locator and double-clicks the element.
func (l *Library) DoubleClick(ctx context.Context, loc string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().DoubleClick(ctx, el)
}

// RightClick resolves the locator and right-clicks the element.
func (l *Library) RightClick(ctx context.Context, loc string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().RightClick(ctx, el)
}

// Focus resolves the locator and gives the element keyboard focus.
func (l *Library) Focus(ctx context.Context, loc string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().Focus(ctx, el)
}

// GetText resolves the locator and reads the element's text.
func (l *Library) GetText(ctx context.Context, loc string) (string, error) {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return "", err
	}
	return l.session.Actor().Text(ctx, el)
}

// SetText resolves the locator and replaces the element's text.
func (l *Library) SetText(ctx context.Context, loc, text string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().SetText(ctx, el, text)
}

// Toggle resolves the locator and flips the element.
func (l *Library) Toggle(ctx context.Context, loc string) error {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	return l.session.Actor().Toggle(ctx, el)
}

// IsToggled resolves the locator and reads the element's toggle state.
func (l *Library) IsToggled(ctx context.Context, loc string) (bool, error) {
	el, err := l.session.Resolve(ctx, loc)
	if err != nil {
		return false, err
	}
	return l.session.Actor().ToggleState(ctx, el)
}

// ElementShouldExist fails with the resolver's error when the locator does
// not resolve.
func (l *Library) ElementShouldExist(ctx context.Context, loc string) error {
	_, err := l.session.Resolve(ctx, loc)
	return err
}

// CountElements returns the number of elements matching the locator's
// final segment.
func (l *Library) CountElements(ctx context.Context, loc string) (int, error) {
	all, err := l.session.ResolveAll(ctx, loc)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// WaitUntilExists polls the locator with bounded backoff until it
// resolves or the wait timeout elapses. Parse errors fail immediately:
// the string will not become valid by waiting.
func (l *Library) WaitUntilExists(ctx context.Context, loc string) error {
	return wait.Retry(ctx, l.waitTimeout, func() error {
		_, err := l.session.Resolve(ctx, loc)
		return err
	})
}

// PressKey sends a named key to the focused element.
func (l *Library) PressKey(ctx context.Context, key string) error {
	return l.session.Actor().PressKey(ctx, key)
}

// TakeScreenshot captures the screen and writes it to path as PNG.
func (l *Library) TakeScreenshot(ctx context.Context, path string) error {
	png, err := l.session.Actor().Screenshot(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	return nil
}
