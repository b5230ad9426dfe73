package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/01HARE01/botcurs/internal/format"
	"github.com/01HARE01/botcurs/internal/game"
	"github.com/01HARE01/botcurs/internal/telemetry"
)

const upcomingPerPage = 10

const startText = "Привет! Я бот для отслеживания киберспортивных матчей.\n\n" +
	"Вот что я умею:\n" +
	"/matches — посмотреть ближайшие матчи по выбранной игре\n" +
	"/alerts — подписаться на уведомления о начале матчей\n" +
	"/unsubscribe — отписаться от уведомлений\n\n" +
	"Я поддерживаю игры: League of Legends, CS2, Dota 2, Valorant, Rainbow Six.\n" +
	"Все уведомления приходят с ссылками на стримы (Twitch/YouTube).\n\n" +
	"Просто выбери команду или кнопку ниже!"

// Inline button definitions. Handlers are matched by the unique; data
// buttons carry the game key or match id as payload.
var (
	btnStartMatches = tele.Btn{Text: "Посмотреть матчи", Unique: "start_matches"}
	btnStartAlerts  = tele.Btn{Text: "Подписаться на уведомления", Unique: "start_alerts"}
	btnUnsubscribe  = tele.Btn{Text: "Отписаться от уведомлений", Unique: "unsubscribe"}
	btnAlertGame    = tele.Btn{Unique: "alertgame"}
	btnMatchGame    = tele.Btn{Unique: "matchgame"}
	btnMatchInfo    = tele.Btn{Unique: "matchinfo"}
)

// registerHandlers wires commands and callback actions
func (b *Bot) registerHandlers() {
	b.tele.Handle("/start", b.handleStart)
	b.tele.Handle("/matches", b.handleMatches)
	b.tele.Handle("/alerts", b.handleAlerts)
	b.tele.Handle("/unsubscribe", b.handleUnsubscribeCommand)

	b.tele.Handle(&btnStartMatches, b.handleMatches)
	b.tele.Handle(&btnStartAlerts, b.handleAlerts)
	b.tele.Handle(&btnUnsubscribe, b.handleUnsubscribeButton)
	b.tele.Handle(&btnAlertGame, b.handleAlertGame)
	b.tele.Handle(&btnMatchGame, b.handleMatchGame)
	b.tele.Handle(&btnMatchInfo, b.handleMatchInfo)
}

// gameKeyboard builds the game-selection menu for the given data button
func gameKeyboard(btn tele.Btn) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(game.All()))
	for _, info := range game.All() {
		rows = append(rows, menu.Row(menu.Data(info.Name, btn.Unique, string(info.Key))))
	}
	menu.Inline(rows...)
	return menu
}

// handleStart handles the /start command
func (b *Bot) handleStart(c tele.Context) error {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStartMatches),
		menu.Row(btnStartAlerts),
		menu.Row(btnUnsubscribe),
	)
	return c.Send(format.EscapeMarkdown(startText), menu, tele.ModeMarkdownV2)
}

// handleMatches handles /matches and the matching start-menu choice
func (b *Bot) handleMatches(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			return err
		}
	}
	return c.Send("Выберите игру, по которой хотите посмотреть предстоящие матчи:", gameKeyboard(btnMatchGame))
}

// handleAlerts handles /alerts and the matching start-menu choice
func (b *Bot) handleAlerts(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			return err
		}
	}
	return c.Send("На какую игру вы хотите получать уведомления?", gameKeyboard(btnAlertGame))
}

// handleUnsubscribeCommand handles the /unsubscribe command
func (b *Bot) handleUnsubscribeCommand(c tele.Context) error {
	if b.subs.Remove(c.Chat().ID) {
		return c.Send("Вы отписаны от всех уведомлений.")
	}
	return c.Send("Вы не были подписаны ни на одну игру.")
}

// handleUnsubscribeButton handles the start-menu unsubscribe choice,
// which always confirms regardless of prior state
func (b *Bot) handleUnsubscribeButton(c tele.Context) error {
	b.subs.Remove(c.Chat().ID)
	if err := c.Respond(); err != nil {
		return err
	}
	return c.Send("Вы отписаны от всех уведомлений.")
}

// handleAlertGame subscribes the chat to alerts for the chosen game
func (b *Bot) handleAlertGame(c tele.Context) error {
	key := game.Key(c.Data())
	b.subs.Set(c.Chat().ID, key)

	if err := c.Respond(); err != nil {
		return err
	}

	slog.Info("Subscribed", "user", c.Chat().ID, "game", key)

	text := fmt.Sprintf("Вы подписаны на уведомления по игре: *%s*", format.EscapeMarkdown(game.Name(key)))
	return c.Send(text, tele.ModeMarkdownV2)
}

// handleMatchGame lists upcoming matches for the chosen game with one
// detail button per match
func (b *Bot) handleMatchGame(c tele.Context) error {
	key := game.Key(c.Data())
	name := game.Name(key)

	if err := c.Respond(); err != nil {
		return err
	}

	ctx, cancel := b.requestContext()
	defer cancel()

	matches, err := b.client.Upcoming(ctx, key, upcomingPerPage)
	if err != nil {
		telemetry.IncUpstreamError()
		slog.Error("Failed to get upcoming matches", "game", key, "error", err)
		matches = nil
	}
	if len(matches) == 0 {
		return c.Send(format.NoMatches(name))
	}

	menu := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(matches))
	lines := make([]string, 0, len(matches)+1)
	lines = append(lines, format.UpcomingHeader(name))
	for i := range matches {
		m := &matches[i]
		lines = append(lines, format.UpcomingLine(m))
		rows = append(rows, menu.Row(menu.Data(format.MatchButton(m), btnMatchInfo.Unique, strconv.FormatInt(m.ID, 10))))
	}
	menu.Inline(rows...)

	return c.Send(strings.Join(lines, "\n"), menu)
}

// handleMatchInfo shows the detail card for one match
func (b *Bot) handleMatchInfo(c tele.Context) error {
	id := c.Data()

	ctx, cancel := b.requestContext()
	defer cancel()

	match, err := b.client.MatchByID(ctx, id)
	if err != nil {
		telemetry.IncUpstreamError()
		slog.Error("Failed to get match details", "match", id, "error", err)
		return c.Respond(&tele.CallbackResponse{Text: "Не удалось получить данные матча."})
	}

	if err := c.Respond(); err != nil {
		return err
	}
	return c.Send(format.MatchDetails(match))
}

func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(b.config.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}
