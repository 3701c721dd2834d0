// Package bot runs the long-lived Telegram chat-bot mode. It serves
// the same meal reports as the CLI plus the meme and fact lookups.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mensa-cli/internal/fun"
	"mensa-cli/internal/metrics"
	"mensa-cli/internal/report"
)

const helpText = `I report canteen meals from OpenMensa.

/meals [id] [date] - meal tables for the default canteens, or one canteen id; date is YYYY-MM-DD or today
/meme - a random meme
/fact - a random useless fact
/dailyfact - the useless fact of the day
/stats - command usage of the last week`

// Bot serves meal reports, memes and facts over Telegram.
type Bot struct {
	api      *tgbotapi.BotAPI
	resolver *report.Resolver
	meals    report.MealSource
	fun      *fun.Client
	metrics  *metrics.Store
	language string
	logger   *zap.Logger
}

// New authorizes against the Telegram API and builds the bot. The
// token is the only credential the caller hands over.
func New(
	token string,
	resolver *report.Resolver,
	meals report.MealSource,
	funClient *fun.Client,
	store *metrics.Store,
	language string,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized", zap.String("account", api.Self.UserName))

	return &Bot{
		api:      api,
		resolver: resolver,
		meals:    meals,
		fun:      funClient,
		metrics:  store,
		language: language,
		logger:   logger,
	}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	start := time.Now()
	command := msg.Command()

	var err error
	switch command {
	case "meals":
		err = b.handleMeals(ctx, msg)
	case "meme":
		err = b.handleMeme(ctx, msg)
	case "fact":
		err = b.handleFact(ctx, msg, false)
	case "dailyfact":
		err = b.handleFact(ctx, msg, true)
	case "stats":
		err = b.handleStats(msg)
	case "start", "help":
		err = b.reply(msg.Chat.ID, helpText)
	default:
		return
	}

	if err != nil {
		b.logger.Warn("command failed",
			zap.String("command", command),
			zap.Int64("chat", msg.Chat.ID),
			zap.Error(err))
		_ = b.reply(msg.Chat.ID, "Something went wrong: "+err.Error())
	}

	if recordErr := b.metrics.Record(metrics.CommandEvent{
		Command:    command,
		ChatID:     msg.Chat.ID,
		DurationMS: time.Since(start).Milliseconds(),
		Success:    err == nil,
	}); recordErr != nil {
		b.logger.Warn("failed to record command event", zap.Error(recordErr))
	}
}

func (b *Bot) handleMeals(ctx context.Context, msg *tgbotapi.Message) error {
	id, dateToken, err := parseMealsArgs(msg.CommandArguments())
	if err != nil {
		return err
	}

	sel, err := report.ParseSelection(id, "")
	if err != nil {
		return err
	}
	date, err := report.ParseDate(dateToken, time.Now())
	if err != nil {
		return err
	}

	canteens, err := b.resolver.Resolve(ctx, sel)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.NewRenderer(b.meals, &buf).Render(ctx, canteens, date); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return b.reply(msg.Chat.ID, "No canteens matched.")
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, "```\n"+buf.String()+"```")
	reply.ParseMode = tgbotapi.ModeMarkdown
	_, err = b.api.Send(reply)
	return err
}

func (b *Bot) handleMeme(ctx context.Context, msg *tgbotapi.Message) error {
	meme, err := b.fun.RandomMeme(ctx)
	if err != nil {
		return err
	}
	return b.reply(msg.Chat.ID, meme.URL)
}

func (b *Bot) handleFact(ctx context.Context, msg *tgbotapi.Message, daily bool) error {
	var (
		fact *fun.Fact
		err  error
	)
	if daily {
		fact, err = b.fun.DailyFact(ctx, b.language)
	} else {
		fact, err = b.fun.RandomFact(ctx, b.language)
	}
	if err != nil {
		return err
	}
	return b.reply(msg.Chat.ID, fact.Text)
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	usage, err := b.metrics.GetDailyUsage(7)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("Command usage, last 7 days:\n")
	if len(usage) == 0 {
		sb.WriteString("no data yet\n")
	}
	for _, day := range usage {
		sb.WriteString(fmt.Sprintf("%s: %d commands, %d failed\n", day.Date, day.Commands, day.Failures))
	}
	return b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// parseMealsArgs reads the optional "[id] [date]" arguments of /meals.
// A numeric first argument is a canteen id; anything else is a date
// token. The date defaults to today.
func parseMealsArgs(args string) (int, string, error) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return 0, report.Today, nil
	case 1:
		if id, err := strconv.Atoi(fields[0]); err == nil {
			return id, report.Today, nil
		}
		return 0, fields[0], nil
	case 2:
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, "", fmt.Errorf("invalid canteen id %q", fields[0])
		}
		return id, fields[1], nil
	default:
		return 0, "", fmt.Errorf("too many arguments: %q", args)
	}
}
