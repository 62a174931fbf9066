package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/sanma/internal/common/clock"
	"github.com/KirkDiggler/sanma/internal/common/uuid"
	"github.com/KirkDiggler/sanma/internal/config"
	"github.com/KirkDiggler/sanma/internal/handlers/discord"
	"github.com/KirkDiggler/sanma/internal/repositories/session_ledger"
	sessionService "github.com/KirkDiggler/sanma/internal/services/session"
	"github.com/KirkDiggler/sanma/internal/settlement"
	"github.com/redis/go-redis/v9"
)

type BotCmd struct {
	RulesFile   string `default:"${rules_file}" help:"HCL file with the rule sets"`
	DefaultRule string `name:"default-rules" default:"${default_ruleset}" help:"Rule set used when /sanma start names none"`
	RedisAddr   string `default:"${redis_addr}" help:"Redis address"`
	LogLevel    string `default:"${log_level}" help:"Log level (debug|info|warn|error)"`
}

func (c *BotCmd) Run(cfg *config.Config) error {
	logger := newLogger(c.LogLevel)

	if cfg.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}

	ruleSets, err := config.LoadRuleSets(c.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rule sets: %w", err)
	}
	defaultRule, err := resolveDefaultRuleSet(ruleSets, c.DefaultRule)
	if err != nil {
		return err
	}
	logger.Info("loaded rule sets", "file", c.RulesFile, "count", len(ruleSets))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	sessionRepo, err := session_ledger.NewRedis(&session_ledger.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		RuleSets:       ruleSets,
		DefaultRuleSet: defaultRule,
		SessionRepo:    sessionRepo,
		Clock:          clock.New(),
		UUIDGenerator:  uuid.New(),
		Logger:         logger.WithPrefix("session"),
	})
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:          cfg.DiscordToken,
		ApplicationID:  cfg.ApplicationID,
		GuildID:        cfg.GuildID,
		SessionService: sessionSvc,
		Logger:         logger.WithPrefix("discord"),
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(ctx); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error("failed to stop bot", "err", err)
	}

	logger.Info("bot has been shut down")
	return nil
}

// resolveDefaultRuleSet checks the requested default against the loaded rule sets.
// Only the built-in name may be missing; the service then uses the first rule set.
func resolveDefaultRuleSet(ruleSets []*settlement.RuleSet, name string) (string, error) {
	if _, err := config.FindRuleSet(ruleSets, name); err != nil {
		if name == config.DefaultRuleSetName {
			return "", nil
		}
		return "", err
	}
	return name, nil
}
