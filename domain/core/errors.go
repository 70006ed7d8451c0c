package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Catalog errors
	ErrCatalogLoad  = errors.New("catalog load failed")
	ErrCatalogEmpty = fmt.Errorf("%w: no pages", ErrCatalogLoad)
	ErrPageNotFound = errors.New("page not found")
	ErrBranchTarget = errors.New("branch target missing")

	// Wizard errors
	ErrValidation      = errors.New("please answer")
	ErrNotLastPage     = errors.New("submit permitted only on the last page")
	ErrSessionNotFound = errors.New("wizard session not found")

	// Submission errors
	ErrSubmission = errors.New("prediction submission failed")
	ErrNoResult   = errors.New("no stored result")
)

// NewValidationError reports the unanswered question by its display text;
// the error string doubles as the message the wizard surfaces to the user.
func NewValidationError(questionText string) error {
	return fmt.Errorf("%w: %q", ErrValidation, questionText)
}

func NewCatalogLoadError(reason string) error {
	return fmt.Errorf("%w: %s", ErrCatalogLoad, reason)
}

func NewSubmissionError(cause error) error {
	return fmt.Errorf("%w: %v", ErrSubmission, cause)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsCatalogLoadError(err error) bool {
	return errors.Is(err, ErrCatalogLoad)
}

func IsSubmissionError(err error) bool {
	return errors.Is(err, ErrSubmission)
}
