package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/01HARE01/botcurs/internal/format"
	"github.com/01HARE01/botcurs/internal/game"
	"github.com/01HARE01/botcurs/internal/pandascore"
	"github.com/01HARE01/botcurs/internal/storage"
	"github.com/01HARE01/botcurs/internal/stream"
	"github.com/01HARE01/botcurs/internal/telemetry"
)

// MatchSource is the slice of the PandaScore client the poller needs
type MatchSource interface {
	Running(ctx context.Context, key game.Key) ([]pandascore.Match, error)
}

// Notifier delivers a rendered alert to a user
type Notifier interface {
	SendAlert(userID int64, text string) error
}

// Poller periodically checks every active subscription for newly started
// matches and sends at-most-once alerts
type Poller struct {
	subs     *storage.Subscriptions
	notified *storage.Notified
	source   MatchSource
	notifier Notifier
	interval time.Duration
	timeout  time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Poller
func New(subs *storage.Subscriptions, notified *storage.Notified, source MatchSource, notifier Notifier, intervalSeconds, timeoutSeconds int) *Poller {
	return &Poller{
		subs:     subs,
		notified: notified,
		source:   source,
		notifier: notifier,
		interval: time.Duration(intervalSeconds) * time.Second,
		timeout:  time.Duration(timeoutSeconds) * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop
func (p *Poller) Start(ctx context.Context) {
	slog.Info("Starting poller", "interval", p.interval)

	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial poll
	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)")
			return
		case <-p.stopChan:
			slog.Info("Poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stop signals the poller to stop
func (p *Poller) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

// poll runs one cycle over all active subscriptions. Running matches are
// fetched once per distinct game key so one slow or failing upstream
// call cannot starve subscribers of other games.
func (p *Poller) poll(ctx context.Context) {
	telemetry.IncPollCycle()

	subs := p.subs.All()
	if len(subs) == 0 {
		slog.Debug("No subscriptions to poll")
		return
	}

	slog.Debug("Polling subscriptions", "count", len(subs))

	running := make(map[game.Key][]pandascore.Match)
	for _, key := range distinctKeys(subs) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		matches, err := p.fetchRunning(ctx, key)
		if err != nil {
			telemetry.IncUpstreamError()
			// Treated as an empty result: subscribers of this game are
			// skipped until the next cycle, everyone else proceeds.
			slog.Error("Failed to get running matches", "game", key, "error", err)
			continue
		}
		running[key] = matches
	}

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return
		default:
			p.notify(sub, running[sub.GameKey])
		}
	}
}

// fetchRunning queries live matches for a game with a bounded timeout
func (p *Poller) fetchRunning(ctx context.Context, key game.Key) ([]pandascore.Match, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.source.Running(callCtx, key)
}

// notify sends alerts for every running match the user has not yet been
// told about. A pair is marked only after the transport accepted the
// message, so failed sends retry on the next cycle.
func (p *Poller) notify(sub storage.Subscription, matches []pandascore.Match) {
	for i := range matches {
		m := &matches[i]
		if m.ID == 0 {
			continue
		}
		if p.notified.Has(sub.UserID, m.ID) {
			continue
		}

		text := format.Alert(m, game.Name(sub.GameKey), stream.Resolve(m))

		if err := p.notifier.SendAlert(sub.UserID, text); err != nil {
			telemetry.IncSendFailure()
			slog.Error("Failed to send alert", "user", sub.UserID, "match", m.ID, "error", err)
			continue
		}

		telemetry.IncNotificationSent()
		p.notified.Mark(sub.UserID, m.ID)
		slog.Info("Sent alert", "user", sub.UserID, "match", m.ID, "game", sub.GameKey)
	}
}

func distinctKeys(subs []storage.Subscription) []game.Key {
	seen := make(map[game.Key]struct{}, len(subs))
	keys := make([]game.Key, 0, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.GameKey]; ok {
			continue
		}
		seen[sub.GameKey] = struct{}{}
		keys = append(keys, sub.GameKey)
	}
	return keys
}
