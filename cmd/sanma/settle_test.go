package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/sanma/internal/config"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleOnce_CompletesMissingScore(t *testing.T) {
	report, err := settleOnce([]string{"42,000", "18000", ""}, []int{2, 0, -2}, config.DefaultRuleSet())
	require.NoError(t, err)

	assert.Equal(t, [settlement.Players]int{42000, 18000, 15000}, report.Record.RawScores)
	assert.Equal(t, [settlement.Players]int{17025, -7015, -10010}, report.Points)
	assert.Equal(t, settlement.RoundResult{17, -7, -10}, report.Record.Round)
	assert.Equal(t, [settlement.Players]int{1900, -700, -1200}, report.Record.Final)
	assert.Equal(t, [settlement.Players]int{2, 0, -2}, report.Record.ChipCounts)
}

func TestSettleOnce_InvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		scores []string
		chips  []int
	}{
		{name: "two missing", scores: []string{"42000", "", ""}, chips: []int{0, 0, 0}},
		{name: "not a number", scores: []string{"abc", "18000", ""}, chips: []int{0, 0, 0}},
		{name: "fraction", scores: []string{"1.5", "18000", ""}, chips: []int{0, 0, 0}},
		{name: "two chips", scores: []string{"42000", "18000", ""}, chips: []int{0, 0}},
		{name: "four scores", scores: []string{"1", "2", "3", "4"}, chips: []int{0, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := settleOnce(tc.scores, tc.chips, config.DefaultRuleSet())
			require.Error(t, err)
			assert.ErrorIs(t, err, settlement.ErrInvalidInput)
			assert.Nil(t, report)
		})
	}
}

func TestSettleCmd_PrintsJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := &SettleCmd{
		Scores:    "42000,18000,",
		Chips:     []int{0, 0, 0},
		Rules:     config.DefaultRuleSetName,
		RulesFile: filepath.Join(t.TempDir(), "missing.hcl"),
		out:       &out,
	}

	require.NoError(t, cmd.Run())

	var report settleReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, config.DefaultRuleSetName, report.Rules.Name)
	assert.Equal(t, settlement.RoundResult{17, -7, -10}, report.Record.Round)
	assert.Equal(t, [settlement.Players]int{1700, -700, -1000}, report.Record.Final)
}

func TestSettleCmd_UnknownRules(t *testing.T) {
	cmd := &SettleCmd{
		Scores:    "42000,18000,",
		Chips:     []int{0, 0, 0},
		Rules:     "yonma",
		RulesFile: filepath.Join(t.TempDir(), "missing.hcl"),
		out:       &bytes.Buffer{},
	}

	err := cmd.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrRuleSetNotFound)
}
