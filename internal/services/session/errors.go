package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilInput         SessionError = "input cannot be nil"
	ErrMissingChannel   SessionError = "channel ID is required"
	ErrNoActiveSession  SessionError = "no active session for this channel"
	ErrRuleSetNotFound  SessionError = "rule set not found"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilSessionRepo   SessionError = "session ledger repository cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
	ErrNilLogger        SessionError = "logger cannot be nil"
	ErrNoRuleSets       SessionError = "at least one rule set is required"
	ErrDuplicateRuleSet SessionError = "duplicate rule set name"
)
