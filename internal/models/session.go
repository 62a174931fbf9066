package models

import (
	"time"

	"github.com/KirkDiggler/sanma/internal/settlement"
)

// Session represents one sitting of three players at a channel's table
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// ChannelID is the Discord channel this session belongs to
	ChannelID string

	// Rules is the rule set snapshot used for every round of the session
	Rules *settlement.RuleSet

	// PlayerNames holds the display name of each seat
	PlayerNames [settlement.Players]string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// CreatedBy is the user ID who created the session
	CreatedBy string

	// Active indicates if this is the current session of the channel
	Active bool
}
