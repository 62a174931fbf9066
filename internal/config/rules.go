package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultRuleSetName names the rule set used when no rules file exists
const DefaultRuleSetName = "standard"

// defaultRate is used when a rule set has no rate attribute
const defaultRate = 100

// ErrRuleSetNotFound is returned when no rule set has the requested name
var ErrRuleSetNotFound = errors.New("rule set not found")

// RulesFile is the layout of the rule set configuration file
type RulesFile struct {
	RuleSets []RuleSetConfig `hcl:"ruleset,block"`
}

// RuleSetConfig defines one named rule set
type RuleSetConfig struct {
	Name        string `hcl:"name,label"`
	Origin      int    `hcl:"origin"`
	BoxRule     bool   `hcl:"box_rule,optional"`
	Uma2        int    `hcl:"uma2,optional"`
	Uma3        int    `hcl:"uma3,optional"`
	Uma2Low     int    `hcl:"uma2_low,optional"`
	ReturnPoint *int   `hcl:"return_point,optional"`
	Chip        int    `hcl:"chip,optional"`
	Rate        *int   `hcl:"rate,optional"`
}

// DefaultRuleSet returns the rule set used when nothing is configured
func DefaultRuleSet() *settlement.RuleSet {
	return &settlement.RuleSet{
		Name:        DefaultRuleSetName,
		Origin:      75000,
		BoxRule:     false,
		Uma2:        -5,
		Uma3:        -10,
		Uma2Low:     -10,
		ReturnPoint: 25000,
		Chip:        100,
		Rate:        100,
	}
}

// LoadRuleSets loads the rule sets from an HCL file.
// A missing file yields the default rule set.
func LoadRuleSets(filename string) ([]*settlement.RuleSet, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return []*settlement.RuleSet{DefaultRuleSet()}, nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	return ParseRuleSets(src, filename)
}

// ParseRuleSets decodes and validates rule sets from HCL source
func ParseRuleSets(src []byte, filename string) ([]*settlement.RuleSet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file: %s", settlement.ErrConfiguration, diags.Error())
	}

	var rulesFile RulesFile
	diags = gohcl.DecodeBody(file.Body, nil, &rulesFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL: %s", settlement.ErrConfiguration, diags.Error())
	}

	if len(rulesFile.RuleSets) == 0 {
		return nil, fmt.Errorf("%w: at least one rule set must be configured", settlement.ErrConfiguration)
	}

	seen := make(map[string]bool, len(rulesFile.RuleSets))
	ruleSets := make([]*settlement.RuleSet, 0, len(rulesFile.RuleSets))
	for _, cfg := range rulesFile.RuleSets {
		if cfg.Name == "" {
			return nil, fmt.Errorf("%w: rule set name cannot be empty", settlement.ErrConfiguration)
		}
		if seen[cfg.Name] {
			return nil, fmt.Errorf("%w: duplicate rule set %s", settlement.ErrConfiguration, cfg.Name)
		}
		seen[cfg.Name] = true

		rules := cfg.toRuleSet()
		if err := rules.Validate(); err != nil {
			return nil, err
		}
		ruleSets = append(ruleSets, rules)
	}

	return ruleSets, nil
}

func (c RuleSetConfig) toRuleSet() *settlement.RuleSet {
	rules := &settlement.RuleSet{
		Name:        c.Name,
		Origin:      c.Origin,
		BoxRule:     c.BoxRule,
		Uma2:        c.Uma2,
		Uma3:        c.Uma3,
		Uma2Low:     c.Uma2Low,
		ReturnPoint: c.Origin / settlement.Players,
		Chip:        c.Chip,
		Rate:        defaultRate,
	}

	// Absent attributes keep their defaults
	if c.ReturnPoint != nil {
		rules.ReturnPoint = *c.ReturnPoint
	}
	if c.Rate != nil {
		rules.Rate = *c.Rate
	}

	return rules
}

// FindRuleSet returns the rule set with the given name
func FindRuleSet(ruleSets []*settlement.RuleSet, name string) (*settlement.RuleSet, error) {
	for _, rules := range ruleSets {
		if rules.Name == name {
			return rules, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRuleSetNotFound, name)
}
