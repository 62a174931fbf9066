package discord

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/KirkDiggler/sanma/internal/services/session"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *models.Session {
	return &models.Session{
		ID:          "session-id",
		ChannelID:   "channel-id",
		PlayerNames: [settlement.Players]string{"East", "South", "West"},
		Rules: &settlement.RuleSet{
			Name:        "standard",
			Origin:      75000,
			Uma2:        -5,
			Uma3:        -10,
			Uma2Low:     -10,
			ReturnPoint: 25000,
			Chip:        100,
			Rate:        100,
		},
		Active: true,
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		in       int
		expected string
	}{
		{in: 0, expected: "0"},
		{in: 17, expected: "+17"},
		{in: -700, expected: "-700"},
		{in: 1900, expected: "+1,900"},
		{in: -1234567, expected: "-1,234,567"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatAmount(tc.in))
		})
	}

	assert.Equal(t, "42,000", formatNumber(42000))
}

func TestUserErrorMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "no session", err: session.ErrNoActiveSession, expected: true},
		{name: "unknown rules", err: fmt.Errorf("%w: yonma", session.ErrRuleSetNotFound), expected: true},
		{name: "bad scores", err: fmt.Errorf("%w: two scores missing", settlement.ErrInvalidInput), expected: true},
		{name: "bad rules", err: fmt.Errorf("%w: origin must be positive", settlement.ErrConfiguration), expected: true},
		{name: "storage", err: errors.New("redis down"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := userErrorMessage(tc.err)
			assert.Equal(t, tc.expected, ok)
			if tc.expected {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestRenderRound(t *testing.T) {
	embed := renderRound(&session.SettleRoundOutput{
		Session: testSession(),
		Record: &models.SessionRecord{
			RawScores: [settlement.Players]int{42000, 18000, 15000},
			Round:     settlement.RoundResult{17, -7, -10},
			ChipGains: settlement.ChipGains{200, 0, -200},
			Final:     [settlement.Players]int{1900, -700, -1200},
		},
		RoundNumber: 3,
		Totals:      [settlement.Players]int{2500, -300, -2200},
	})

	assert.Equal(t, "Round 3", embed.Title)
	require.Len(t, embed.Fields, settlement.Players)
	assert.Equal(t, "East", embed.Fields[0].Name)
	assert.Equal(t, "Score 42,000\nPoints +17\nChips +200\n**+1,900**\nTotal +2,500", embed.Fields[0].Value)
	assert.Equal(t, "Score 15,000\nPoints -10\nChips -200\n**-1,200**\nTotal -2,200", embed.Fields[2].Value)
}

func TestRenderTotals(t *testing.T) {
	record := &models.SessionRecord{Final: [settlement.Players]int{1900, -700, -1200}}

	embed := renderTotals(&session.GetTotalsOutput{
		Session: testSession(),
		Records: []*models.SessionRecord{record, record},
		Totals:  [settlement.Players]int{3800, -1400, -2400},
	})

	assert.Equal(t, "#1  +1,900 / -700 / -1,200\n#2  +1,900 / -700 / -1,200\n", embed.Description)
	require.Len(t, embed.Fields, settlement.Players)
	assert.Equal(t, "+3,800", embed.Fields[0].Value)
	assert.Equal(t, "-2,400", embed.Fields[2].Value)
}

func TestRenderTotals_Empty(t *testing.T) {
	embed := renderTotals(&session.GetTotalsOutput{Session: testSession()})
	assert.Equal(t, "No rounds yet.", embed.Description)
}

func TestRenderTotals_TruncatesHistory(t *testing.T) {
	records := make([]*models.SessionRecord, maxHistoryLines+5)
	for n := range records {
		records[n] = &models.SessionRecord{}
	}

	embed := renderTotals(&session.GetTotalsOutput{Session: testSession(), Records: records})
	assert.Contains(t, embed.Description, "… 5 earlier rounds\n#6  0 / 0 / 0\n")
	assert.Contains(t, embed.Description, fmt.Sprintf("#%d  0 / 0 / 0\n", maxHistoryLines+5))
}

func TestRenderRuleSets_MarksDefault(t *testing.T) {
	rules := testSession().Rules
	embed := renderRuleSets(&session.ListRuleSetsOutput{
		RuleSets:       []*settlement.RuleSet{rules},
		DefaultRuleSet: rules.Name,
	})

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "standard (default)", embed.Fields[0].Name)
	assert.Equal(t, "Origin 75,000\nReturn 25,000\nUma -5 / -10 (-10 below return)\nBox off\nChip 100\nRate 100", embed.Fields[0].Value)
}
