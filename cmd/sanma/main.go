package main

import (
	"github.com/KirkDiggler/sanma/internal/config"
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Bot     BotCmd           `cmd:"" help:"Run the Discord bot"`
	Settle  SettleCmd        `cmd:"" help:"Settle one round and print it as JSON"`
}

func main() {
	cfg := config.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sanma"),
		kong.Description("Three-player mahjong score settlement"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":         version,
			"rules_file":      cfg.RulesFile,
			"log_level":       cfg.LogLevel,
			"redis_addr":      cfg.RedisAddr,
			"default_ruleset": config.DefaultRuleSetName,
		},
		kong.Bind(cfg),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
