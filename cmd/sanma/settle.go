package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KirkDiggler/sanma/internal/config"
	"github.com/KirkDiggler/sanma/internal/ledger"
	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/KirkDiggler/sanma/internal/settlement"
)

type SettleCmd struct {
	Scores    string `required:"" help:"Comma separated scores by seat; leave one empty to complete it (e.g. 42000,18000,)"`
	Chips     []int  `default:"0,0,0" help:"Chips won by each seat"`
	Rules     string `default:"${default_ruleset}" help:"Rule set name"`
	RulesFile string `default:"${rules_file}" help:"HCL file with the rule sets"`

	out io.Writer `kong:"-"`
}

// settleReport is what settle prints
type settleReport struct {
	Rules  *settlement.RuleSet     `json:"rules"`
	Points [settlement.Players]int `json:"points"`
	Record *models.SessionRecord   `json:"record"`
}

func (c *SettleCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	ruleSets, err := config.LoadRuleSets(c.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rule sets: %w", err)
	}

	rules, err := config.FindRuleSet(ruleSets, c.Rules)
	if err != nil {
		return err
	}

	report, err := settleOnce(strings.Split(c.Scores, ","), c.Chips, rules)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func settleOnce(rawScores []string, chips []int, rules *settlement.RuleSet) (*settleReport, error) {
	parsed, err := settlement.ParseScores(rawScores)
	if err != nil {
		return nil, err
	}

	completed, err := settlement.CompleteScores(parsed, rules.Origin)
	if err != nil {
		return nil, err
	}

	scores, err := settlement.RequireComplete(completed)
	if err != nil {
		return nil, err
	}

	adjustment, err := settlement.Adjust(scores, rules)
	if err != nil {
		return nil, err
	}

	result := adjustment.Result()

	chipGains, err := settlement.ChipGainsFor(chips, rules)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewRecord(result, chipGains, rules)
	if err != nil {
		return nil, err
	}
	copy(record.RawScores[:], scores)
	copy(record.ChipCounts[:], chips)

	return &settleReport{
		Rules:  rules,
		Points: adjustment.Points,
		Record: record,
	}, nil
}
