// Package report implements the per-stage warnings/errors reporter that
// spec section 6 calls out as the boundary between the core and the
// external logger: a stage drains its Warnings and Errors after running,
// but never panics or calls logrus.Fatal/Panic itself (section 7).
//
// The teacher's archive2.go logs straight to logrus as it decodes; here the
// same direct-to-logrus style is kept, but mediated through a Reporter so
// the driver can also inspect what happened after the fact.
package report

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Reporter collects recoverable warnings and fatal errors for one stage run
// on one file.
type Reporter struct {
	Stage    string
	Warnings []string
	Errors   []string
}

// New returns a Reporter for the named stage ("dealiasing" or "superobing").
func New(stage string) *Reporter {
	return &Reporter{Stage: stage}
}

// Warnf records a recoverable condition. It does not stop the stage.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logrus.WithField("stage", r.Stage).Warn(msg)
}

// Debugf records a non-actionable diagnostic (fit residuals, point counts)
// without entering the Warnings/Errors ledger.
func (r *Reporter) Debugf(format string, args ...interface{}) {
	logrus.WithField("stage", r.Stage).Debugf(format, args...)
}

// Errorf records a fatal condition and returns an error the caller should
// propagate to abort the current file. It never panics.
func (r *Reporter) Errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, msg)
	logrus.WithField("stage", r.Stage).Error(msg)
	return errors.New(msg)
}

// Clean reports whether the stage produced no fatal errors.
func (r *Reporter) Clean() bool {
	return len(r.Errors) == 0
}
