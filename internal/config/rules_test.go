package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = `
ruleset "standard" {
  origin       = 75000
  uma2         = -5
  uma3         = -10
  uma2_low     = -10
  return_point = 25000
  chip         = 100
  rate         = 100
}

ruleset "box" {
  origin   = 105000
  box_rule = true
  uma2     = 0
  uma3     = -20
  chip     = 500
}
`

func TestParseRuleSets(t *testing.T) {
	ruleSets, err := ParseRuleSets([]byte(testRules), "rules.hcl")
	require.NoError(t, err)
	require.Len(t, ruleSets, 2)

	assert.Equal(t, DefaultRuleSet(), ruleSets[0])

	box := ruleSets[1]
	assert.Equal(t, "box", box.Name)
	assert.Equal(t, 105000, box.Origin)
	assert.True(t, box.BoxRule)
	assert.Equal(t, -20, box.Uma3)
	assert.Equal(t, 35000, box.ReturnPoint, "return point defaults to an even share of origin")
	assert.Equal(t, 100, box.Rate, "rate defaults to 100")
	assert.Equal(t, 500, box.Chip)
}

func TestParseRuleSets_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "syntax error",
			src:  `ruleset "a" {`,
		},
		{
			name: "no rule sets",
			src:  ``,
		},
		{
			name: "missing origin",
			src:  `ruleset "a" { rate = 100 }`,
		},
		{
			name: "fractional origin",
			src:  `ruleset "a" { origin = 75000.5 }`,
		},
		{
			name: "negative origin",
			src:  `ruleset "a" { origin = -75000 }`,
		},
		{
			name: "negative chip",
			src: `
ruleset "a" {
  origin = 75000
  chip   = -1
}
`,
		},
		{
			name: "explicit zero return point",
			src:  `ruleset "a" { origin = 75000 return_point = 0 }`,
		},
		{
			name: "duplicate names",
			src: `
ruleset "a" { origin = 75000 }
ruleset "a" { origin = 105000 }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuleSets([]byte(tt.src), "rules.hcl")
			require.ErrorIs(t, err, settlement.ErrConfiguration)
		})
	}
}

func TestParseRuleSets_ExplicitZeroRateIsKept(t *testing.T) {
	src := `
ruleset "chips_only" {
  origin = 75000
  rate   = 0
  chip   = 100
}
`
	ruleSets, err := ParseRuleSets([]byte(src), "rules.hcl")
	require.NoError(t, err)
	require.Len(t, ruleSets, 1)
	assert.Equal(t, 0, ruleSets[0].Rate)
	assert.Equal(t, 100, ruleSets[0].Chip)
	assert.Equal(t, 25000, ruleSets[0].ReturnPoint)
}

func TestLoadRuleSets_MissingFileUsesDefault(t *testing.T) {
	ruleSets, err := LoadRuleSets(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.Len(t, ruleSets, 1)
	assert.Equal(t, DefaultRuleSet(), ruleSets[0])
	assert.NoError(t, ruleSets[0].Validate())
}

func TestLoadRuleSets_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rules.hcl")
	require.NoError(t, os.WriteFile(filename, []byte(testRules), 0o600))

	ruleSets, err := LoadRuleSets(filename)
	require.NoError(t, err)
	require.Len(t, ruleSets, 2)
}

func TestFindRuleSet(t *testing.T) {
	ruleSets, err := ParseRuleSets([]byte(testRules), "rules.hcl")
	require.NoError(t, err)

	rules, err := FindRuleSet(ruleSets, "box")
	require.NoError(t, err)
	assert.Equal(t, "box", rules.Name)

	_, err = FindRuleSet(ruleSets, "missing")
	assert.ErrorIs(t, err, ErrRuleSetNotFound)
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("RULES_FILE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DISCORD_TOKEN", "token")

	cfg := Load()
	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "rules.hcl", cfg.RulesFile)
	assert.Equal(t, "info", cfg.LogLevel)
}
