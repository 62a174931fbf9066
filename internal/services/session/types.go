package session

import (
	"github.com/KirkDiggler/sanma/internal/common/clock"
	"github.com/KirkDiggler/sanma/internal/common/uuid"
	"github.com/KirkDiggler/sanma/internal/models"
	sessionRepo "github.com/KirkDiggler/sanma/internal/repositories/session_ledger"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/charmbracelet/log"
)

// Config holds configuration for the session service
type Config struct {
	// RuleSets are the rule sets sessions can be started with
	RuleSets []*settlement.RuleSet

	// DefaultRuleSet names the rule set used when none is requested.
	// The first rule set is used when empty.
	DefaultRuleSet string

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *log.Logger
}

// ListRuleSetsInput contains parameters for listing rule sets
type ListRuleSetsInput struct{}

// ListRuleSetsOutput contains the configured rule sets
type ListRuleSetsOutput struct {
	// RuleSets in configuration order
	RuleSets []*settlement.RuleSet

	// DefaultRuleSet is the name used when a session is started without one
	DefaultRuleSet string
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// ChannelID is the Discord channel the table plays in
	ChannelID string

	// CreatedBy is the Discord user ID starting the session
	CreatedBy string

	// RuleSetName selects the rule set; empty uses the default
	RuleSetName string

	// PlayerNames are up to three seat names; blanks get a default name
	PlayerNames []string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// Session is the newly started session
	Session *models.Session

	// ReplacedSessionID is the session that was active before, if any
	ReplacedSessionID string
}

// GetCurrentSessionInput contains parameters for retrieving the current session
type GetCurrentSessionInput struct {
	ChannelID string
}

// GetCurrentSessionOutput contains the current session
type GetCurrentSessionOutput struct {
	// Session is the active session, or nil if none exists
	Session *models.Session
}

// RenamePlayersInput contains parameters for renaming seats
type RenamePlayersInput struct {
	ChannelID string

	// PlayerNames are up to three new seat names; blanks keep the current name
	PlayerNames []string
}

// RenamePlayersOutput contains the renamed session
type RenamePlayersOutput struct {
	Session *models.Session
}

// SettleRoundInput contains parameters for settling a round
type SettleRoundInput struct {
	ChannelID string

	// Scores are the raw scores by seat; at most one may be nil and is completed
	Scores []*int

	// ChipCounts are the chips each seat won or lost; empty means no chips
	ChipCounts []int
}

// SettleRoundOutput contains the result of settling a round
type SettleRoundOutput struct {
	// Session the round was added to
	Session *models.Session

	// Record is the settled round
	Record *models.SessionRecord

	// RoundNumber is the position of the round in the session, starting at 1
	RoundNumber int

	// Totals are the running totals including this round
	Totals [settlement.Players]int
}

// GetTotalsInput contains parameters for retrieving session totals
type GetTotalsInput struct {
	ChannelID string
}

// GetTotalsOutput contains the session history and totals
type GetTotalsOutput struct {
	Session *models.Session

	// Records are the settled rounds in order
	Records []*models.SessionRecord

	// Totals are each seat's running total
	Totals [settlement.Players]int
}

// ResetSessionInput contains parameters for resetting a session
type ResetSessionInput struct {
	ChannelID string
}

// ResetSessionOutput contains the result of resetting a session
type ResetSessionOutput struct {
	Session *models.Session

	// PreviousTotals are the totals that were cleared
	PreviousTotals [settlement.Players]int

	// RoundsCleared is the number of rounds removed
	RoundsCleared int
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	ChannelID string
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	Session *models.Session

	// FinalTotals are the session's totals when it ended
	FinalTotals [settlement.Players]int

	// Rounds is the number of rounds played
	Rounds int
}
