package draft

import (
	"errors"
	"fmt"

	"travel-agency/services/generator"

	"github.com/google/uuid"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("admin access required")
	ErrGeneration  = errors.New("generation failed")
	ErrPersistence = errors.New("persistence failed")
	// ErrInvalidState is returned when a session operation is not allowed in
	// the session's current state.
	ErrInvalidState = errors.New("operation not allowed in current state")

	ErrRateLimited    = generator.ErrRateLimited
	ErrQuotaExhausted = generator.ErrQuotaExhausted
)

// Error codes returned to API clients.
const (
	CodeValidation     = "validation_error"
	CodeForbidden      = "forbidden"
	CodeGeneration     = "generation_failed"
	CodeRateLimited    = "rate_limited"
	CodeQuotaExhausted = "quota_exhausted"
	CodePersistence    = "persistence_failed"
	CodePartialCommit  = "partial_commit"
	CodeInvalidState   = "invalid_state"
)

// PartialCommitError means the tour row was written but its itinerary was
// not. The tour exists under TourID and its itinerary can be written again.
type PartialCommitError struct {
	TourID uuid.UUID
	Err    error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("tour %s saved without itinerary: %v", e.TourID, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}

// Classify returns the client facing code of err and whether retrying the
// same request may succeed.
func Classify(err error) (code string, retryable bool) {
	var partial *PartialCommitError
	switch {
	case err == nil:
		return "", false
	case errors.As(err, &partial):
		return CodePartialCommit, true
	case errors.Is(err, ErrForbidden):
		return CodeForbidden, false
	case errors.Is(err, ErrValidation):
		return CodeValidation, false
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited, true
	case errors.Is(err, ErrQuotaExhausted):
		return CodeQuotaExhausted, false
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState, false
	case errors.Is(err, ErrPersistence):
		return CodePersistence, true
	default:
		return CodeGeneration, true
	}
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
