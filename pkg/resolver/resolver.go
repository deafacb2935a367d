// Package resolver determines which declared transitions are currently
// applicable to a resource.
package resolver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waymark/pkg/domain"
)

// Resolver evaluates transition guards. It keeps no state between calls:
// every Resolve re-reads the resource.
type Resolver struct {
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the transitions whose guard passes, in declaration order.
// The first guard error aborts resolution with a *domain.GuardEvaluationError
// and no partial result.
func (r *Resolver) Resolve(res domain.Resource) ([]domain.Transition, error) {
	if res == nil {
		return nil, fmt.Errorf("cannot resolve transitions of a nil resource")
	}

	reg := res.Transitions()
	declared := reg.Declared()
	applicable := make([]domain.Transition, 0, len(declared))

	for _, t := range declared {
		ok, err := t.Allow(res)
		if err != nil {
			return nil, &domain.GuardEvaluationError{
				Kind:       reg.Kind(),
				Transition: t.Name,
				Err:        err,
			}
		}
		if ok {
			applicable = append(applicable, t)
		}
	}

	r.logger.Debug("transitions resolved",
		"kind", reg.Kind(),
		"declared", len(declared),
		"applicable", len(applicable))

	return applicable, nil
}
