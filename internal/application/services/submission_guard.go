package services

import (
	"sync/atomic"

	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
)

// submissionGuard allows a single in-flight submission and drives the
// loading state of the triggering control.
type submissionGuard struct {
	control  ports.SubmitControl
	inFlight atomic.Bool
}

// begin claims the guard. The returned release must be deferred; it resets the
// loading state whatever the outcome.
func (g *submissionGuard) begin() (release func(), err error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.ErrSubmissionInFlight
	}
	if g.control != nil {
		g.control.SetLoading(true)
	}
	return func() {
		if g.control != nil {
			g.control.SetLoading(false)
		}
		g.inFlight.Store(false)
	}, nil
}

// InFlight reports whether a submission is running.
func (g *submissionGuard) InFlight() bool {
	return g.inFlight.Load()
}
