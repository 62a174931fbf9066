package models

import (
	"time"

	"github.com/KirkDiggler/sanma/internal/settlement"
)

// SessionRecord is one settled round of a session. Records are never modified once created.
type SessionRecord struct {
	// ID is the unique identifier for the record
	ID string

	// SessionID is the session the round was played in
	SessionID string

	// RawScores are the completed raw scores the round was settled from
	RawScores [settlement.Players]int

	// ChipCounts are the chips each seat won or lost
	ChipCounts [settlement.Players]int

	// Round is the settlement result of the round
	Round settlement.RoundResult

	// ChipGains is the monetary value of the chips
	ChipGains settlement.ChipGains

	// Final is the money each seat won or lost: Round*Rate + ChipGains
	Final [settlement.Players]int

	// Timestamp is when the round was settled
	Timestamp time.Time
}
