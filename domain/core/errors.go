package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDataNotFound signals that the requested game date has no aggregate.
	ErrDataNotFound = errors.New("no data for requested game")

	// ErrInvalidWindow signals a malformed trend window specification.
	ErrInvalidWindow = errors.New("invalid trend window")

	// ErrInsufficientData signals too few complete-case rows for the
	// requested predictors and lags.
	ErrInsufficientData = errors.New("insufficient data for regression")

	// ErrSingularMatrix signals a rank-deficient regression design.
	ErrSingularMatrix = errors.New("singular design matrix")
)

// Error constructors with context

func NewDataNotFoundError(date GameDate) error {
	return fmt.Errorf("%w: %s", ErrDataNotFound, date)
}

func NewInvalidWindowError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidWindow, reason)
}

func NewInsufficientDataError(rows, required int) error {
	return fmt.Errorf("%w: %d usable rows, need at least %d", ErrInsufficientData, rows, required)
}

// Error checking helpers

func IsDataNotFound(err error) bool {
	return errors.Is(err, ErrDataNotFound)
}

func IsInvalidWindow(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsSingularMatrix(err error) bool {
	return errors.Is(err, ErrSingularMatrix)
}

// IsRequestError reports whether err belongs to the recoverable taxonomy
// that the request boundary converts into a user-facing message.
func IsRequestError(err error) bool {
	return IsDataNotFound(err) ||
		IsInvalidWindow(err) ||
		IsInsufficientData(err) ||
		IsSingularMatrix(err)
}
