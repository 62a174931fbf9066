package session_ledger

import "github.com/KirkDiggler/sanma/internal/models"

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetCurrentSessionInput contains parameters for retrieving the current session
type GetCurrentSessionInput struct {
	// ChannelID is the Discord channel to get the session for
	ChannelID string
}

// GetCurrentSessionOutput contains the result of retrieving the current session
type GetCurrentSessionOutput struct {
	// Session is the current active session, or nil if none exists
	Session *models.Session
}

// AddRecordInput contains parameters for adding a round record
type AddRecordInput struct {
	Record *models.SessionRecord
}

// GetRecordsInput contains parameters for retrieving a session's records
type GetRecordsInput struct {
	SessionID string
}

// GetRecordsOutput contains the result of retrieving a session's records
type GetRecordsOutput struct {
	Records []*models.SessionRecord
}

// DeleteRecordsInput contains parameters for deleting a session's records
type DeleteRecordsInput struct {
	SessionID string
}
