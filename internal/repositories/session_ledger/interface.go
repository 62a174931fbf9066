package session_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sanma/internal/repositories/session_ledger Repository

import (
	"context"

	"github.com/KirkDiggler/sanma/internal/models"
)

// Repository defines the interface for session and round record persistence
type Repository interface {
	// SaveSession persists a session. Saving an active session makes it the channel's
	// current session and deactivates the one it replaces.
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetCurrentSession retrieves the current active session for a channel
	GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*GetCurrentSessionOutput, error)

	// AddRecord appends a settled round to its session
	AddRecord(ctx context.Context, input *AddRecordInput) error

	// GetRecords retrieves a session's rounds in the order they were added
	GetRecords(ctx context.Context, input *GetRecordsInput) (*GetRecordsOutput, error)

	// DeleteRecords removes every round of a session
	DeleteRecords(ctx context.Context, input *DeleteRecordsInput) error
}
