// Package session owns the state of one automation session: the tree
// provider, the actor, the current window and the pacing policy. It
// replaces the reference library's process-wide globals with an explicit
// object created on attach and torn down on close.
package session

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/autolab-dev/uia-runner/pkg/core"
	"github.com/autolab-dev/uia-runner/pkg/logger"
	"github.com/autolab-dev/uia-runner/pkg/resolver"
	"github.com/autolab-dev/uia-runner/pkg/wait"
)

// Session binds a provider and actor to a current window.
type Session struct {
	// ID correlates log lines across one session.
	ID string

	provider core.Provider
	actor    core.Actor
	resolver *resolver.Resolver
	window   core.Element
	closer   io.Closer
}

// Option configures a Session.
type Option func(*options)

type options struct {
	pacing wait.Policy
	window core.Element
	closer io.Closer
}

// WithPacing sets the fixed delay applied before every resolution.
func WithPacing(d time.Duration) Option {
	return func(o *options) { o.pacing = wait.Delay{Duration: d} }
}

// WithWindow sets the initial window root.
func WithWindow(el core.Element) Option {
	return func(o *options) { o.window = el }
}

// WithCloser attaches a resource (typically the bridge client) closed on
// session teardown.
func WithCloser(c io.Closer) Option {
	return func(o *options) { o.closer = c }
}

// New creates a session over the given provider and actor.
func New(provider core.Provider, actor core.Actor, opts ...Option) *Session {
	o := &options{pacing: wait.None{}}
	for _, opt := range opts {
		opt(o)
	}

	s := &Session{
		ID:       uuid.NewString(),
		provider: provider,
		actor:    actor,
		resolver: resolver.New(provider, resolver.WithPacing(o.pacing)),
		window:   o.window,
		closer:   o.closer,
	}
	logger.Debug("session %s created", s.ID)
	return s
}

// Resolver returns the session's locator resolver.
func (s *Session) Resolver() *resolver.Resolver {
	return s.resolver
}

// Actor returns the session's action surface.
func (s *Session) Actor() core.Actor {
	return s.actor
}

// Window returns the current window root, or nil if none is selected.
func (s *Session) Window() core.Element {
	return s.window
}

// SetWindow selects the window all locators resolve under.
func (s *Session) SetWindow(el core.Element) {
	s.window = el
}

// Resolve resolves a locator against the current window.
func (s *Session) Resolve(ctx context.Context, loc string) (core.Element, error) {
	if s.window == nil {
		return nil, core.ErrNoWindow
	}
	return s.resolver.Resolve(ctx, s.window, loc)
}

// ResolveAll resolves a locator against the current window, returning all
// matches of its final segment.
func (s *Session) ResolveAll(ctx context.Context, loc string) ([]core.Element, error) {
	if s.window == nil {
		return nil, core.ErrNoWindow
	}
	return s.resolver.ResolveAll(ctx, s.window, loc)
}

// Close tears the session down, releasing the attached resource.
func (s *Session) Close() error {
	logger.Debug("session %s closed", s.ID)
	s.window = nil
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
