package settlement

// Error is the error type returned by the settlement engine
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrInvalidInput is returned when a score or chip vector cannot be settled
	ErrInvalidInput Error = "invalid input"

	// ErrConfiguration is returned when a rule set is missing or nonsensical
	ErrConfiguration Error = "invalid rule set"
)
