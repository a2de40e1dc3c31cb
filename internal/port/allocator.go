// Package port finds free TCP ports for tenant backends.
//
// Candidates start at a base port and advance by a fixed step. A candidate
// is free when no socket on the host is listening on it at the moment of
// the check. Nothing is reserved, so two concurrent callers may receive the
// same port.
package port

import (
	"fmt"

	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/logger"
)

// Prober reports whether something is listening on a TCP port.
type Prober interface {
	Listening(port int) (bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(port int) (bool, error)

// Listening calls f(port).
func (f ProberFunc) Listening(port int) (bool, error) {
	return f(port)
}

// Allocator walks the port range start, start+step, ... up to end.
type Allocator struct {
	start int
	step  int
	end   int // 0 means up to 65535
	probe Prober
}

// NewAllocator creates an Allocator. end may be 0 for no configured bound.
func NewAllocator(start, step, end int, probe Prober) *Allocator {
	return &Allocator{start: start, step: step, end: end, probe: probe}
}

// Next returns the first candidate port with no listener.
func (a *Allocator) Next() (int, error) {
	if a.step < 1 {
		return 0, errors.Wrap(errors.ErrCodePort, "invalid port step", fmt.Errorf("step %d", a.step))
	}
	limit := a.end
	if limit == 0 || limit > 65535 {
		limit = 65535
	}

	for p := a.start; p <= limit; p += a.step {
		busy, err := a.probe.Listening(p)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodePort, fmt.Sprintf("failed to probe port %d", p), err)
		}
		if !busy {
			logger.Debug("port %d is free", p)
			return p, nil
		}
		logger.Debug("port %d is in use", p)
	}

	return 0, &errors.RouteError{
		Code:    errors.ErrCodePort,
		Message: fmt.Sprintf("no free port between %d and %d", a.start, limit),
	}
}
