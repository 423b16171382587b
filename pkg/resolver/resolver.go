// Package resolver evaluates parsed locator queries against a live UI
// element tree.
//
// Resolution is synchronous and single-threaded per call: one call runs to
// completion before the caller proceeds, matching the serial nature of UI
// interaction. No results are cached across calls; every resolution
// re-walks the live tree because UI state is volatile.
package resolver

import (
	"context"
	"strings"

	"github.com/autolab-dev/uia-runner/pkg/core"
	"github.com/autolab-dev/uia-runner/pkg/locator"
	"github.com/autolab-dev/uia-runner/pkg/wait"
)

// Resolver turns locator strings into element handles.
type Resolver struct {
	provider core.Provider
	pacing   wait.Policy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPacing sets the policy invoked once per top-level resolution call.
func WithPacing(p wait.Policy) Option {
	return func(r *Resolver) { r.pacing = p }
}

// New creates a Resolver over the given tree provider.
func New(provider core.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		pacing:   wait.None{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses the locator and resolves it to a single element below root.
func (r *Resolver) Resolve(ctx context.Context, root core.Element, loc string) (core.Element, error) {
	q, err := locator.Parse(loc)
	if err != nil {
		return nil, err
	}
	return r.ResolveQuery(ctx, root, q)
}

// ResolveQuery resolves an already parsed query chain to a single element.
func (r *Resolver) ResolveQuery(ctx context.Context, root core.Element, q *locator.Query) (core.Element, error) {
	if err := r.pacing.Pace(ctx); err != nil {
		return nil, err
	}
	return r.resolveChain(ctx, root, q)
}

// ResolveAll parses the locator and returns every element matching its
// final segment. Anchor segments are still resolved to a single element
// each; an empty result is a valid enumeration outcome, not an error.
func (r *Resolver) ResolveAll(ctx context.Context, root core.Element, loc string) ([]core.Element, error) {
	q, err := locator.Parse(loc)
	if err != nil {
		return nil, err
	}
	return r.ResolveAllQuery(ctx, root, q)
}

// ResolveAllQuery is the enumeration form of ResolveQuery.
func (r *Resolver) ResolveAllQuery(ctx context.Context, root core.Element, q *locator.Query) ([]core.Element, error) {
	if err := r.pacing.Pace(ctx); err != nil {
		return nil, err
	}

	// Resolve every anchor segment down to the final one.
	for q.Next != nil {
		anchor, err := r.resolveSegment(ctx, root, q)
		if err != nil {
			return nil, err
		}
		if anchor == nil {
			return nil, core.ErrAmbiguousAnchor.WithDetails(map[string]interface{}{
				"anchor": q.Describe(),
			})
		}
		root = anchor
		q = q.Next
	}

	if q.Kind == locator.KindDescendantByOrdinal {
		return r.enumerateByPartial(ctx, root, q)
	}

	all, err := r.provider.FindAllDescendants(ctx, root, q.Filter())
	if err != nil {
		return nil, err
	}
	if q.Ordinal > 0 {
		if len(all) < q.Ordinal {
			return nil, core.ErrElementNotFound.WithDetails(map[string]interface{}{
				"locator": q.Describe(),
				"matches": len(all),
			})
		}
		return all[q.Ordinal-1 : q.Ordinal], nil
	}
	return all, nil
}

// resolveChain walks the query chain, re-rooting at each resolved anchor.
// A miss on an intermediate segment fails before the inner query is ever
// evaluated.
func (r *Resolver) resolveChain(ctx context.Context, root core.Element, q *locator.Query) (core.Element, error) {
	for {
		var el core.Element
		var err error
		if q.Kind == locator.KindDescendantByOrdinal {
			el, err = r.descendantByOrdinal(ctx, root, q)
		} else {
			el, err = r.resolveSegment(ctx, root, q)
		}
		if err != nil {
			return nil, err
		}
		if el == nil {
			if q.Next != nil {
				return nil, core.ErrAmbiguousAnchor.WithDetails(map[string]interface{}{
					"anchor": q.Describe(),
				})
			}
			return nil, core.ErrElementNotFound.WithDetails(map[string]interface{}{
				"locator": q.Describe(),
			})
		}
		if q.Next == nil {
			return el, nil
		}
		root = el
		q = q.Next
	}
}

// resolveSegment evaluates one attribute/path segment below root, applying
// the ordinal rule. Returns (nil, nil) when nothing matches.
func (r *Resolver) resolveSegment(ctx context.Context, root core.Element, q *locator.Query) (core.Element, error) {
	if q.Ordinal == 0 {
		return r.provider.FindFirstDescendant(ctx, root, q.Filter())
	}

	all, err := r.provider.FindAllDescendants(ctx, root, q.Filter())
	if err != nil {
		return nil, err
	}
	if len(all) < q.Ordinal {
		return nil, nil
	}
	return all[q.Ordinal-1], nil
}

// descendantByOrdinal scans the anchor's entire subtree in provider order,
// counting elements whose control type matches and whose name contains the
// partial text as a substring. The n-th counted element is the result.
func (r *Resolver) descendantByOrdinal(ctx context.Context, root core.Element, q *locator.Query) (core.Element, error) {
	all, err := r.provider.FindAllDescendants(ctx, root, core.Filter{})
	if err != nil {
		return nil, err
	}

	count := 0
	for _, el := range all {
		if el.ControlType() != q.ControlType {
			continue
		}
		if !strings.Contains(el.Name(), q.Partial) {
			continue
		}
		count++
		if count == q.Ordinal {
			return el, nil
		}
	}
	return nil, nil
}

// enumerateByPartial is the enumeration form of descendantByOrdinal: it
// returns every tag+partial match under root, ignoring the ordinal.
func (r *Resolver) enumerateByPartial(ctx context.Context, root core.Element, q *locator.Query) ([]core.Element, error) {
	all, err := r.provider.FindAllDescendants(ctx, root, core.Filter{})
	if err != nil {
		return nil, err
	}

	var result []core.Element
	for _, el := range all {
		if el.ControlType() != q.ControlType {
			continue
		}
		if !strings.Contains(el.Name(), q.Partial) {
			continue
		}
		result = append(result, el)
	}
	return result, nil
}
