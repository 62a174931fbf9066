package settlement

import "fmt"

// Players is the number of seats at a table. Only three-player games are supported.
const Players = 3

// RuleSet describes how a round is scored and converted to money.
// A RuleSet is shared by pointer between rounds and must not be modified once validated.
type RuleSet struct {
	// Name identifies the rule set in configuration and in a session
	Name string `json:"name"`

	// Origin is the total point pool every round's raw scores add up to
	Origin int `json:"origin"`

	// BoxRule allows rounded scores below zero when true; otherwise they are clamped to zero
	BoxRule bool `json:"box_rule"`

	// Uma2 is the rank adjustment applied to the second place player
	Uma2 int `json:"uma2"`

	// Uma3 is the rank adjustment applied to the third place player
	Uma3 int `json:"uma3"`

	// Uma2Low is added to second place when their adjusted score is still below ReturnPoint
	Uma2Low int `json:"uma2_low"`

	// ReturnPoint is the baseline subtracted from every non-first player
	ReturnPoint int `json:"return_point"`

	// Chip is the monetary value of one chip
	Chip int `json:"chip"`

	// Rate is the monetary value of one settlement point
	Rate int `json:"rate"`
}

// Validate reports whether the rule set can be used to settle rounds
func (r *RuleSet) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: rule set cannot be nil", ErrConfiguration)
	}
	if r.Origin <= 0 {
		return fmt.Errorf("%w: %s: origin must be positive, got %d", ErrConfiguration, r.Name, r.Origin)
	}
	if r.ReturnPoint <= 0 {
		return fmt.Errorf("%w: %s: return point must be positive, got %d", ErrConfiguration, r.Name, r.ReturnPoint)
	}
	if r.Rate < 0 {
		return fmt.Errorf("%w: %s: rate cannot be negative, got %d", ErrConfiguration, r.Name, r.Rate)
	}
	if r.Chip < 0 {
		return fmt.Errorf("%w: %s: chip value cannot be negative, got %d", ErrConfiguration, r.Name, r.Chip)
	}
	return nil
}

// RoundResult holds the settlement points of one round indexed by seat
type RoundResult [Players]int

// Sum returns the total of all seats. It may be off zero by the final per-seat rounding.
func (r RoundResult) Sum() int {
	return r[0] + r[1] + r[2]
}

// ChipGains holds the monetary value of each seat's chips for one round
type ChipGains [Players]int

// Adjustment is the state of a round after rank adjustments, before the final division
type Adjustment struct {
	// Ranking lists seats from first to third place
	Ranking [Players]int

	// Rounded holds each seat's score after rounding to ten (and clamping without box rule)
	Rounded [Players]int

	// Points holds each seat's adjusted points; they always sum to zero
	Points [Players]int
}

// First returns the seat in first place
func (a *Adjustment) First() int {
	return a.Ranking[0]
}

// Second returns the seat in second place
func (a *Adjustment) Second() int {
	return a.Ranking[1]
}

// Third returns the seat in third place
func (a *Adjustment) Third() int {
	return a.Ranking[2]
}
