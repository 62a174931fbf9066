package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sanma/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Button IDs
const (
	ButtonShowTotals = "sanma_totals"
)

// Bot represents the Discord bot instance
type Bot struct {
	session        *discordgo.Session
	commands       map[string]CommandHandler
	commandIDs     map[string]string // Maps command name to command ID
	sessionService session.Service
	logger         *log.Logger
	config         *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Session service
	SessionService session.Service

	Logger *log.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Create a new Discord session
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:        dg,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		sessionService: cfg.SessionService,
		logger:         cfg.Logger,
		config:         cfg,
	}

	// Register the interaction handler
	dg.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	ruleSets, err := b.sessionService.ListRuleSets(ctx, &session.ListRuleSetsInput{})
	if err != nil {
		return fmt.Errorf("failed to list rule sets: %w", err)
	}

	names := make([]string, 0, len(ruleSets.RuleSets))
	for _, rules := range ruleSets.RuleSets {
		names = append(names, rules.Name)
	}

	sanmaCmd := NewSanmaCommand(b.sessionService, names, b.logger)
	if err := b.RegisterCommand(sanmaCmd); err != nil {
		return fmt.Errorf("failed to register sanma command: %w", err)
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "id", cmdID, "err", err)
		} else {
			b.logger.Debug("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord.
// Commands are registered for GuildID when set, globally otherwise.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID, "guild", b.config.GuildID)

	return nil
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "err", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction", "err", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch customID {
	case ButtonShowTotals:
		return b.handleShowTotalsButton(s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleShowTotalsButton shows the totals to the user who clicked
func (b *Bot) handleShowTotalsButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := b.sessionService.GetTotals(context.Background(), &session.GetTotalsInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		if msg, ok := userErrorMessage(err); ok {
			return RespondWithError(s, i, msg)
		}
		b.logger.Error("failed to get totals", "channel", i.ChannelID, "err", err)
		return RespondWithError(s, i, "Something went wrong. Please try again.")
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{renderTotals(output)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func roundButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Totals",
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonShowTotals,
		},
	}
}
