package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mensa-cli/internal/bot"
	"mensa-cli/internal/config"
	"mensa-cli/internal/database"
	"mensa-cli/internal/fun"
	"mensa-cli/internal/metrics"
	"mensa-cli/internal/openmensa"
	"mensa-cli/internal/report"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:   "mensa",
		Usage:  "Report canteen meals from OpenMensa, with memes and useless facts on the side",
		Action: run,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "id",
				Aliases: []string{"i"},
				Usage:   "Canteen id to report on",
			},
			&cli.StringFlag{
				Name:    "location",
				Aliases: []string{"l"},
				Usage:   "Free-text location to search canteens for",
			},
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Value:   report.Today,
				Usage:   "Date to report, YYYY-MM-DD or today",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Sources: cli.EnvVars("MENSA_CONFIG"),
				Usage:   "Path to config file",
			},
			&cli.BoolFlag{
				Name:  "meme",
				Usage: "Print a meme link and exit",
			},
			&cli.BoolFlag{
				Name:  "random-fact",
				Usage: "Print a random useless fact and exit",
			},
			&cli.BoolFlag{
				Name:  "daily-fact",
				Usage: "Print the useless fact of the day and exit",
			},
			&cli.BoolFlag{
				Name:  "bot",
				Usage: "Run the Telegram bot",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Telegram bot token",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to an env file holding " + bot.EnvTokenVar,
			},
			&cli.IntFlag{
				Name:  "cleanup-days",
				Usage: "Remove command metrics older than N days and exit",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if days := int(cmd.Int("cleanup-days")); days > 0 {
		return runCleanup(days, cfg)
	}

	client := openmensa.NewClient()
	funClient := fun.NewClient()

	if cmd.Bool("bot") {
		return runBot(ctx, cmd, cfg, client, funClient, logger)
	}

	// The novelty lookups log their failures but never fail the run.
	switch {
	case cmd.Bool("meme"):
		meme, err := funClient.RandomMeme(ctx)
		if err != nil {
			logger.Warn("fetching meme failed", zap.Error(err))
			return nil
		}
		fmt.Println(meme.URL)
		return nil
	case cmd.Bool("daily-fact"):
		fact, err := funClient.DailyFact(ctx, cfg.Facts.Language)
		if err != nil {
			logger.Warn("fetching daily fact failed", zap.Error(err))
			return nil
		}
		fmt.Println(fact.Text)
		return nil
	case cmd.Bool("random-fact"):
		fact, err := funClient.RandomFact(ctx, cfg.Facts.Language)
		if err != nil {
			logger.Warn("fetching random fact failed", zap.Error(err))
			return nil
		}
		fmt.Println(fact.Text)
		return nil
	}

	// Selection and date must both validate before any network call.
	sel, err := report.ParseSelection(int(cmd.Int("id")), cmd.String("location"))
	if err != nil {
		return err
	}
	date, err := report.ParseDate(cmd.String("date"), time.Now())
	if err != nil {
		return err
	}

	canteens, err := report.NewResolver(client, cfg.Locations.Canteens).Resolve(ctx, sel)
	if err != nil {
		return err
	}

	return report.NewRenderer(client, os.Stdout).Render(ctx, canteens, date)
}

func runBot(
	ctx context.Context,
	cmd *cli.Command,
	cfg *config.Config,
	client *openmensa.Client,
	funClient *fun.Client,
	logger *zap.Logger,
) error {
	token, err := bot.ResolveToken(cmd.String("token"), cmd.String("env-file"))
	if err != nil {
		return err
	}

	metricsPath, err := config.ExpandPath(cfg.Metrics.Path)
	if err != nil {
		return err
	}
	db, err := database.Open(metricsPath)
	if err != nil {
		return err
	}
	defer db.Close()

	resolver := report.NewResolver(client, cfg.Locations.Canteens)
	b, err := bot.New(token, resolver, client, funClient, metrics.NewStore(db.SQL), cfg.Facts.Language, logger)
	if err != nil {
		return err
	}

	logger.Info("starting telegram bot")
	return b.Run(ctx)
}

func runCleanup(days int, cfg *config.Config) error {
	metricsPath, err := config.ExpandPath(cfg.Metrics.Path)
	if err != nil {
		return err
	}
	db, err := database.Open(metricsPath)
	if err != nil {
		return err
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(days)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Printf("Removed %d old command records.\n", affected)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	if verbose {
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return c.Build()
}
