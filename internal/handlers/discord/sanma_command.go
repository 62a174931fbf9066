package discord

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/sanma/internal/services/session"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Subcommands of /sanma
const (
	SubcommandRules  = "rules"
	SubcommandStart  = "start"
	SubcommandNames  = "names"
	SubcommandRound  = "round"
	SubcommandTotals = "totals"
	SubcommandReset  = "reset"
	SubcommandEnd    = "end"
)

// Discord allows at most 25 choices per option
const maxRuleChoices = 25

// SanmaCommand handles the /sanma command
type SanmaCommand struct {
	BaseCommand
	sessionService session.Service
	logger         *log.Logger
}

// NewSanmaCommand creates a new sanma command handler.
// ruleSetNames become the choices of the rules option.
func NewSanmaCommand(sessionService session.Service, ruleSetNames []string, logger *log.Logger) *SanmaCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range ruleSetNames {
		if len(choices) == maxRuleChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}

	return &SanmaCommand{
		BaseCommand: BaseCommand{
			Name:        "sanma",
			Description: "Three-player mahjong score keeping",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRules,
					Description: "List the available rule sets",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStart,
					Description: "Start a new session in this channel",
					Options: append([]*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "rules",
							Description: "Rule set to play with",
							Choices:     choices,
						},
					}, seatOptions(discordgo.ApplicationCommandOptionString, "name", "Name of seat %d")...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandNames,
					Description: "Rename the seats",
					Options:     seatOptions(discordgo.ApplicationCommandOptionString, "name", "New name of seat %d"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRound,
					Description: "Settle a round; leave one score empty to fill it in",
					Options: append(
						seatOptions(discordgo.ApplicationCommandOptionString, "score", "Final score of seat %d"),
						seatOptions(discordgo.ApplicationCommandOptionInteger, "chips", "Chips won by seat %d")...,
					),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandTotals,
					Description: "Show the round history and totals",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandReset,
					Description: "Clear every round of the session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandEnd,
					Description: "End the session",
				},
			},
		},
		sessionService: sessionService,
		logger:         logger,
	}
}

func seatOptions(optionType discordgo.ApplicationCommandOptionType, prefix, description string) []*discordgo.ApplicationCommandOption {
	options := make([]*discordgo.ApplicationCommandOption, settlement.Players)
	for seat := range options {
		options[seat] = &discordgo.ApplicationCommandOption{
			Type:        optionType,
			Name:        fmt.Sprintf("%s%d", prefix, seat+1),
			Description: fmt.Sprintf(description, seat+1),
		}
	}
	return options
}

// Handle processes a Discord interaction for the sanma command
func (c *SanmaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt
	}

	ctx := context.Background()
	channelID := i.ChannelID

	var embed *discordgo.MessageEmbed
	var buttons []discordgo.MessageComponent
	var err error
	switch sub.Name {
	case SubcommandRules:
		embed, err = c.handleRules(ctx)
	case SubcommandStart:
		embed, err = c.handleStart(ctx, channelID, interactionUserID(i), options)
	case SubcommandNames:
		embed, err = c.handleNames(ctx, channelID, options)
	case SubcommandRound:
		embed, err = c.handleRound(ctx, channelID, options)
		buttons = roundButtons()
	case SubcommandTotals:
		embed, err = c.handleTotals(ctx, channelID)
	case SubcommandReset:
		embed, err = c.handleReset(ctx, channelID)
	case SubcommandEnd:
		embed, err = c.handleEnd(ctx, channelID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}

	if err != nil {
		return c.respondWithServiceError(s, i, sub.Name, err)
	}

	return RespondWithEmbed(s, i, embed, buttons...)
}

func (c *SanmaCommand) handleRules(ctx context.Context) (*discordgo.MessageEmbed, error) {
	output, err := c.sessionService.ListRuleSets(ctx, &session.ListRuleSetsInput{})
	if err != nil {
		return nil, err
	}
	return renderRuleSets(output), nil
}

func (c *SanmaCommand) handleStart(ctx context.Context, channelID, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.MessageEmbed, error) {
	input := &session.StartSessionInput{
		ChannelID:   channelID,
		CreatedBy:   userID,
		PlayerNames: seatStrings(options, "name"),
	}
	if opt, ok := options["rules"]; ok {
		input.RuleSetName = opt.StringValue()
	}

	output, err := c.sessionService.StartSession(ctx, input)
	if err != nil {
		return nil, err
	}
	return renderSessionStarted(output), nil
}

func (c *SanmaCommand) handleNames(ctx context.Context, channelID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.MessageEmbed, error) {
	output, err := c.sessionService.RenamePlayers(ctx, &session.RenamePlayersInput{
		ChannelID:   channelID,
		PlayerNames: seatStrings(options, "name"),
	})
	if err != nil {
		return nil, err
	}
	return renderPlayers(output.Session), nil
}

func (c *SanmaCommand) handleRound(ctx context.Context, channelID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.MessageEmbed, error) {
	scores, err := settlement.ParseScores(seatStrings(options, "score"))
	if err != nil {
		return nil, err
	}

	chips := make([]int, settlement.Players)
	for seat := range chips {
		if opt, ok := options[fmt.Sprintf("chips%d", seat+1)]; ok {
			chips[seat] = int(opt.IntValue())
		}
	}

	output, err := c.sessionService.SettleRound(ctx, &session.SettleRoundInput{
		ChannelID:  channelID,
		Scores:     scores,
		ChipCounts: chips,
	})
	if err != nil {
		return nil, err
	}
	return renderRound(output), nil
}

func (c *SanmaCommand) handleTotals(ctx context.Context, channelID string) (*discordgo.MessageEmbed, error) {
	output, err := c.sessionService.GetTotals(ctx, &session.GetTotalsInput{ChannelID: channelID})
	if err != nil {
		return nil, err
	}
	return renderTotals(output), nil
}

func (c *SanmaCommand) handleReset(ctx context.Context, channelID string) (*discordgo.MessageEmbed, error) {
	output, err := c.sessionService.ResetSession(ctx, &session.ResetSessionInput{ChannelID: channelID})
	if err != nil {
		return nil, err
	}
	return renderReset(output), nil
}

func (c *SanmaCommand) handleEnd(ctx context.Context, channelID string) (*discordgo.MessageEmbed, error) {
	output, err := c.sessionService.EndSession(ctx, &session.EndSessionInput{ChannelID: channelID})
	if err != nil {
		return nil, err
	}
	return renderEnd(output), nil
}

func (c *SanmaCommand) respondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, action string, err error) error {
	if msg, ok := userErrorMessage(err); ok {
		return RespondWithError(s, i, msg)
	}

	c.logger.Error("command failed", "subcommand", action, "channel", i.ChannelID, "err", err)
	return RespondWithError(s, i, "Something went wrong. Please try again.")
}

// seatStrings returns prefix1..prefix3 in seat order, blank when absent
func seatStrings(options map[string]*discordgo.ApplicationCommandInteractionDataOption, prefix string) []string {
	values := make([]string, settlement.Players)
	for seat := range values {
		if opt, ok := options[fmt.Sprintf("%s%d", prefix, seat+1)]; ok {
			values[seat] = opt.StringValue()
		}
	}
	return values
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
