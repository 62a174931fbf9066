// Package ledger keeps the running account of one session's settled rounds.
//
// A Ledger is not safe for concurrent use; callers sharing one must serialise
// AppendRound, Append, Reset and Totals themselves.
package ledger

import (
	"fmt"

	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/KirkDiggler/sanma/internal/settlement"
)

// Ledger is an ordered list of settled rounds
type Ledger struct {
	records []*models.SessionRecord
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// NewRecord builds the record of a settled round without appending it
func NewRecord(result settlement.RoundResult, chipGains settlement.ChipGains, rules *settlement.RuleSet) (*models.SessionRecord, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: rule set cannot be nil", settlement.ErrConfiguration)
	}

	record := &models.SessionRecord{
		Round:     result,
		ChipGains: chipGains,
	}
	for seat := range record.Final {
		record.Final[seat] = result[seat]*rules.Rate + chipGains[seat]
	}

	return record, nil
}

// AppendRound converts a round to money, appends it and returns the new record.
// The ledger is left untouched when it fails.
func (l *Ledger) AppendRound(result settlement.RoundResult, chipGains settlement.ChipGains, rules *settlement.RuleSet) (*models.SessionRecord, error) {
	record, err := NewRecord(result, chipGains, rules)
	if err != nil {
		return nil, err
	}

	l.Append(record)
	return record, nil
}

// Append adds an existing record, for example one loaded from storage
func (l *Ledger) Append(record *models.SessionRecord) {
	if record == nil {
		return
	}
	l.records = append(l.records, record)
}

// Reset removes every record
func (l *Ledger) Reset() {
	l.records = nil
}

// Len returns the number of rounds in the ledger
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns the rounds in the order they were appended
func (l *Ledger) Records() []*models.SessionRecord {
	records := make([]*models.SessionRecord, len(l.records))
	copy(records, l.records)
	return records
}

// Totals returns each seat's running total across all rounds
func (l *Ledger) Totals() [settlement.Players]int {
	var totals [settlement.Players]int
	for _, record := range l.records {
		for seat, amount := range record.Final {
			totals[seat] += amount
		}
	}
	return totals
}
