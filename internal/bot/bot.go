package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/01HARE01/botcurs/internal/config"
	"github.com/01HARE01/botcurs/internal/pandascore"
	"github.com/01HARE01/botcurs/internal/poller"
	"github.com/01HARE01/botcurs/internal/storage"
)

// Bot represents the Telegram bot instance
type Bot struct {
	config   *config.Config
	tele     *tele.Bot
	client   *pandascore.Client
	subs     *storage.Subscriptions
	notified *storage.Notified
	poller   *poller.Poller
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Telegram session
	session, err := tele.NewBot(tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	b := &Bot{
		config:   cfg,
		tele:     session,
		client:   pandascore.NewClient(cfg.PandaScoreToken, timeout),
		subs:     storage.NewSubscriptions(),
		notified: storage.NewNotified(),
	}

	// Register command and callback handlers
	b.registerHandlers()

	return b, nil
}

// Start launches the background match poller and the Telegram long-poll
// loop
func (b *Bot) Start(ctx context.Context) error {
	b.poller = poller.New(b.subs, b.notified, b.client, b, b.config.PollingIntervalSeconds, b.config.RequestTimeoutSeconds)
	go b.poller.Start(ctx)

	go b.tele.Start()

	me := b.tele.Me
	if me != nil {
		slog.Info("Connected to Telegram", "user", me.Username)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Stop the poller
	if b.poller != nil {
		b.poller.Stop()
	}

	// Stop the Telegram long-poll loop
	if b.tele != nil {
		b.tele.Stop()
	}

	return nil
}

// SendAlert implements poller.Notifier: it delivers a rendered match
// alert to the user's chat.
func (b *Bot) SendAlert(userID int64, text string) error {
	_, err := b.tele.Send(&tele.User{ID: userID}, text, &tele.SendOptions{
		ParseMode: tele.ModeMarkdownV2,
	})
	return err
}
