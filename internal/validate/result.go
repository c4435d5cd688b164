// Package validate checks a content repository against the per-article
// layout contract, and legacy articles and widgets against their schemas.
package validate

import (
	"fmt"
	"io"

	"github.com/starford/folio/internal/apperr"
)

// Severity of an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding of a validator.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result collects the findings of one validator run.
type Result struct {
	Name     string
	Checked  int
	Errors   []Issue
	Warnings []Issue
}

func newResult(name string) *Result {
	return &Result{Name: name}
}

func (r *Result) errorf(path, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Err returns an error wrapping apperr.ErrValidationFailed when the run found
// errors. Warnings never fail a run.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("validate: %s: %d errors: %w", r.Name, len(r.Errors), apperr.ErrValidationFailed)
}

// Print writes the findings and a verdict line.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "[%s] checked %d\n", r.Name, r.Checked)
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings (%d):\n", len(r.Warnings))
		for _, i := range r.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", i)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Validation FAILED (%d errors):\n", len(r.Errors))
		for _, i := range r.Errors {
			fmt.Fprintf(w, "  ✗ %s\n", i)
		}
		return
	}
	fmt.Fprintf(w, "%s validation PASSED\n", r.Name)
}
