package session

import "context"

// Service defines the interface for session operations
type Service interface {
	// ListRuleSets returns the rule sets a session can be started with
	ListRuleSets(ctx context.Context, input *ListRuleSetsInput) (*ListRuleSetsOutput, error)

	// StartSession starts a new session in a channel, replacing any active one
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetCurrentSession returns the active session of a channel, if any
	GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*GetCurrentSessionOutput, error)

	// RenamePlayers changes the display names of the seats
	RenamePlayers(ctx context.Context, input *RenamePlayersInput) (*RenamePlayersOutput, error)

	// SettleRound settles one round and adds it to the session ledger
	SettleRound(ctx context.Context, input *SettleRoundInput) (*SettleRoundOutput, error)

	// GetTotals returns the session history and running totals
	GetTotals(ctx context.Context, input *GetTotalsInput) (*GetTotalsOutput, error)

	// ResetSession clears every round of the session
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// EndSession closes the active session of a channel
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}
