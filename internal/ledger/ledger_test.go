package ledger

import (
	"testing"

	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite

	rules  *settlement.RuleSet
	ledger *Ledger
}

func (s *LedgerTestSuite) SetupTest() {
	s.rules = &settlement.RuleSet{
		Name:        "standard",
		Origin:      75000,
		Uma2:        -5,
		Uma3:        -10,
		Uma2Low:     -10,
		ReturnPoint: 25000,
		Chip:        100,
		Rate:        100,
	}
	s.ledger = New()
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) TestAppendRound_StandardRound() {
	result, err := settlement.Settle([]int{42000, 18000, 15000}, s.rules)
	s.Require().NoError(err)

	gains, err := settlement.ChipGainsFor([]int{0, 0, 0}, s.rules)
	s.Require().NoError(err)

	record, err := s.ledger.AppendRound(result, gains, s.rules)
	s.Require().NoError(err)
	s.Equal([settlement.Players]int{1700, -700, -1000}, record.Final)
	s.Equal(result, record.Round)
	s.Equal(1, s.ledger.Len())
	s.Equal([settlement.Players]int{1700, -700, -1000}, s.ledger.Totals())
}

func (s *LedgerTestSuite) TestAppendRound_AddsChipGains() {
	record, err := s.ledger.AppendRound(settlement.RoundResult{17, -7, -10}, settlement.ChipGains{200, -300, 100}, s.rules)
	s.Require().NoError(err)
	s.Equal([settlement.Players]int{1900, -1000, -900}, record.Final)
}

func (s *LedgerTestSuite) TestAppendRound_NilRulesLeavesLedgerUntouched() {
	_, err := s.ledger.AppendRound(settlement.RoundResult{17, -7, -10}, settlement.ChipGains{}, s.rules)
	s.Require().NoError(err)

	record, err := s.ledger.AppendRound(settlement.RoundResult{1, 2, 3}, settlement.ChipGains{}, nil)
	s.Require().ErrorIs(err, settlement.ErrConfiguration)
	s.Nil(record)
	s.Equal(1, s.ledger.Len())
	s.Equal([settlement.Players]int{1700, -700, -1000}, s.ledger.Totals())
}

func (s *LedgerTestSuite) TestTotals_EmptyLedger() {
	s.Equal([settlement.Players]int{0, 0, 0}, s.ledger.Totals())
	s.Empty(s.ledger.Records())
}

func (s *LedgerTestSuite) TestTotals_SumsEveryRound() {
	rounds := []struct {
		result settlement.RoundResult
		gains  settlement.ChipGains
	}{
		{result: settlement.RoundResult{17, -7, -10}, gains: settlement.ChipGains{0, 0, 0}},
		{result: settlement.RoundResult{-25, 50, -25}, gains: settlement.ChipGains{100, -200, 100}},
		{result: settlement.RoundResult{18, -8, -11}, gains: settlement.ChipGains{-500, 0, 500}},
		{result: settlement.RoundResult{5, 15, -20}, gains: settlement.ChipGains{0, 300, -300}},
	}

	var want [settlement.Players]int
	for n, round := range rounds {
		s.Equal(want, s.ledger.Totals(), "after %d rounds", n)

		record, err := s.ledger.AppendRound(round.result, round.gains, s.rules)
		s.Require().NoError(err)
		for seat := range want {
			want[seat] += record.Final[seat]
		}
	}

	s.Equal(want, s.ledger.Totals())
	s.Equal([settlement.Players]int{1100, 5100, -6300}, s.ledger.Totals())
	s.Equal(len(rounds), s.ledger.Len())
}

func (s *LedgerTestSuite) TestTotals_DoesNotMutate() {
	_, err := s.ledger.AppendRound(settlement.RoundResult{17, -7, -10}, settlement.ChipGains{}, s.rules)
	s.Require().NoError(err)

	first := s.ledger.Totals()
	second := s.ledger.Totals()
	s.Equal(first, second)
	s.Equal(1, s.ledger.Len())
}

func (s *LedgerTestSuite) TestReset_IsIdempotent() {
	_, err := s.ledger.AppendRound(settlement.RoundResult{17, -7, -10}, settlement.ChipGains{}, s.rules)
	s.Require().NoError(err)

	s.ledger.Reset()
	s.Equal([settlement.Players]int{}, s.ledger.Totals())
	s.Equal(0, s.ledger.Len())

	s.ledger.Reset()
	s.Equal([settlement.Players]int{}, s.ledger.Totals())
	s.Equal(0, s.ledger.Len())
}

func (s *LedgerTestSuite) TestRecords_ReturnsCopyInOrder() {
	first := &models.SessionRecord{ID: "round-1", Final: [settlement.Players]int{1, 2, 3}}
	second := &models.SessionRecord{ID: "round-2", Final: [settlement.Players]int{4, 5, 6}}
	s.ledger.Append(first)
	s.ledger.Append(second)
	s.ledger.Append(nil)

	records := s.ledger.Records()
	s.Require().Len(records, 2)
	s.Equal("round-1", records[0].ID)
	s.Equal("round-2", records[1].ID)

	records[0] = nil
	s.Equal("round-1", s.ledger.Records()[0].ID)
	s.Equal([settlement.Players]int{5, 7, 9}, s.ledger.Totals())
}
