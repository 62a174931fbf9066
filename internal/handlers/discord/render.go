package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/KirkDiggler/sanma/internal/services/session"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxHistoryLines caps the round list in the totals embed
const maxHistoryLines = 20

var printer = message.NewPrinter(language.English)

// formatNumber renders n with thousands separators
func formatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// formatAmount renders n with thousands separators and an explicit sign
func formatAmount(n int) string {
	if n > 0 {
		return "+" + formatNumber(n)
	}
	return formatNumber(n)
}

// userErrorMessage returns the message shown for errors the user can fix
func userErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		return "There's no session in this channel. Use `/sanma start` to begin one.", true
	case errors.Is(err, session.ErrRuleSetNotFound):
		return "Unknown rule set. Use `/sanma rules` to see what's available.", true
	case errors.Is(err, settlement.ErrInvalidInput):
		return fmt.Sprintf("Those scores don't work: %v", err), true
	case errors.Is(err, settlement.ErrConfiguration):
		return fmt.Sprintf("The rule set is broken: %v", err), true
	}
	return "", false
}

func renderRuleSets(output *session.ListRuleSetsOutput) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(output.RuleSets))
	for _, rules := range output.RuleSets {
		name := rules.Name
		if name == output.DefaultRuleSet {
			name += " (default)"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  describeRules(rules),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "Rule sets",
		Color:  colorInfo,
		Fields: fields,
	}
}

func describeRules(rules *settlement.RuleSet) string {
	box := "off"
	if rules.BoxRule {
		box = "on"
	}

	return fmt.Sprintf("Origin %s\nReturn %s\nUma %d / %d (%d below return)\nBox %s\nChip %s\nRate %s",
		formatNumber(rules.Origin),
		formatNumber(rules.ReturnPoint),
		rules.Uma2, rules.Uma3, rules.Uma2Low,
		box,
		formatNumber(rules.Chip),
		formatNumber(rules.Rate))
}

func renderSessionStarted(output *session.StartSessionOutput) *discordgo.MessageEmbed {
	description := fmt.Sprintf("Playing **%s** with %s.",
		output.Session.Rules.Name, strings.Join(output.Session.PlayerNames[:], ", "))
	if output.ReplacedSessionID != "" {
		description += "\nThe previous session in this channel was closed."
	}

	return &discordgo.MessageEmbed{
		Title:       "Session started",
		Description: description,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Rules",
				Value: describeRules(output.Session.Rules),
			},
		},
	}
}

func renderPlayers(sess *models.Session) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Players",
		Description: strings.Join(sess.PlayerNames[:], ", "),
		Color:       colorInfo,
	}
}

func renderRound(output *session.SettleRoundOutput) *discordgo.MessageEmbed {
	record := output.Record
	fields := make([]*discordgo.MessageEmbedField, 0, settlement.Players)
	for seat, name := range output.Session.PlayerNames {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: name,
			Value: fmt.Sprintf("Score %s\nPoints %s\nChips %s\n**%s**\nTotal %s",
				formatNumber(record.RawScores[seat]),
				formatAmount(record.Round[seat]),
				formatAmount(record.ChipGains[seat]),
				formatAmount(record.Final[seat]),
				formatAmount(output.Totals[seat])),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Round %d", output.RoundNumber),
		Color:  colorWin,
		Fields: fields,
	}
}

func renderTotals(output *session.GetTotalsOutput) *discordgo.MessageEmbed {
	var history strings.Builder
	first := 0
	if len(output.Records) > maxHistoryLines {
		first = len(output.Records) - maxHistoryLines
		fmt.Fprintf(&history, "… %d earlier rounds\n", first)
	}
	for n, record := range output.Records[first:] {
		fmt.Fprintf(&history, "#%d  %s\n", first+n+1, joinAmounts(record.Final))
	}
	if history.Len() == 0 {
		history.WriteString("No rounds yet.")
	}

	return &discordgo.MessageEmbed{
		Title:       "Totals",
		Description: history.String(),
		Color:       colorInfo,
		Fields:      totalsFields(output.Session, output.Totals),
	}
}

func renderReset(output *session.ResetSessionOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Session reset",
		Description: fmt.Sprintf("Cleared %d rounds. Totals before the reset:", output.RoundsCleared),
		Color:       colorWarning,
		Fields:      totalsFields(output.Session, output.PreviousTotals),
	}
}

func renderEnd(output *session.EndSessionOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Session ended",
		Description: fmt.Sprintf("%d rounds played. Final totals:", output.Rounds),
		Color:       colorWarning,
		Fields:      totalsFields(output.Session, output.FinalTotals),
	}
}

func totalsFields(sess *models.Session, totals [settlement.Players]int) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, settlement.Players)
	for seat, name := range sess.PlayerNames {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  formatAmount(totals[seat]),
			Inline: true,
		})
	}
	return fields
}

func joinAmounts(amounts [settlement.Players]int) string {
	parts := make([]string, len(amounts))
	for seat, amount := range amounts {
		parts[seat] = formatAmount(amount)
	}
	return strings.Join(parts, " / ")
}
