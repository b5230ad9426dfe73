// Package format renders user-facing message text: MarkdownV2 escaping,
// Almaty-local times and the alert/listing templates.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/01HARE01/botcurs/internal/pandascore"
)

const (
	timeLayout  = "15:04, 02.01.2006"
	unknownTime = "Неизвестно"

	// Placeholder shown when an opponent slot is absent
	noTeam = "-"
)

// Alerts carry times in the audience's local zone, UTC+6.
var almaty = time.FixedZone("Asia/Almaty", 6*60*60)

// markdownSpecials are the characters Telegram requires escaped in
// MarkdownV2 text.
const markdownSpecials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes Telegram MarkdownV2 special characters
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if r < 128 && strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LocalTime converts an upstream UTC timestamp to Almaty local time.
// Absent or malformed values render a placeholder instead of failing.
func LocalTime(utc string) string {
	if utc == "" {
		return unknownTime
	}

	t, err := time.Parse("2006-01-02T15:04:05Z", utc)
	if err != nil {
		t, err = time.Parse(time.RFC3339, utc)
		if err != nil {
			return unknownTime
		}
	}
	return t.In(almaty).Format(timeLayout)
}

// TeamNames returns both opponents' names, with placeholders for absent
// or unnamed slots
func TeamNames(m *pandascore.Match) (string, string) {
	t1, t2 := noTeam, noTeam
	if m == nil {
		return t1, t2
	}
	if len(m.Opponents) > 0 && m.Opponents[0].Opponent.Name != "" {
		t1 = m.Opponents[0].Opponent.Name
	}
	if len(m.Opponents) > 1 && m.Opponents[1].Opponent.Name != "" {
		t2 = m.Opponents[1].Opponent.Name
	}
	return t1, t2
}

// ScheduledTime renders the match start for listings and detail cards,
// preferring the scheduled timestamp over the actual begin time
func ScheduledTime(m *pandascore.Match) string {
	if m == nil {
		return unknownTime
	}
	if m.ScheduledAt != "" {
		return LocalTime(m.ScheduledAt)
	}
	return LocalTime(m.BeginAt)
}

// AlertTime renders the start for live alerts, preferring the actual
// begin time over the schedule
func AlertTime(m *pandascore.Match) string {
	if m == nil {
		return unknownTime
	}
	if m.BeginAt != "" {
		return LocalTime(m.BeginAt)
	}
	return LocalTime(m.ScheduledAt)
}

// Alert builds the MarkdownV2 "match started" notification. The stream
// link is appended only when one was resolved.
func Alert(m *pandascore.Match, gameName, streamURL string) string {
	t1, t2 := TeamNames(m)
	text := fmt.Sprintf("Матч начался\\!\n%s vs %s\n%s\n%s",
		EscapeMarkdown(t1),
		EscapeMarkdown(t2),
		EscapeMarkdown(gameName),
		EscapeMarkdown(AlertTime(m)),
	)
	if streamURL != "" {
		text += fmt.Sprintf("\n\n▶ [Прямая трансляция](%s)", streamURL)
	}
	return text
}

// NoMatches is the explicit empty-result reply for an upcoming-matches
// query
func NoMatches(gameName string) string {
	return fmt.Sprintf("Матчи по игре %s отсутствуют.", gameName)
}

// UpcomingHeader opens the upcoming-matches listing for a game
func UpcomingHeader(gameName string) string {
	return fmt.Sprintf("🎮 Ближайшие матчи — %s: \n", gameName)
}

// UpcomingLine renders one listing entry
func UpcomingLine(m *pandascore.Match) string {
	t1, t2 := TeamNames(m)
	return fmt.Sprintf("• %s vs %s — %s", t1, t2, ScheduledTime(m))
}

// MatchButton labels the per-match detail button
func MatchButton(m *pandascore.Match) string {
	t1, t2 := TeamNames(m)
	return fmt.Sprintf("%s vs %s", t1, t2)
}

// MatchDetails builds the plain-text match detail card
func MatchDetails(m *pandascore.Match) string {
	t1, t2 := TeamNames(m)

	gameName := noTeam
	if m != nil && m.Videogame.Name != "" {
		gameName = m.Videogame.Name
	}
	status := unknownTime
	if m != nil && m.Status != "" {
		status = m.Status
	}

	return fmt.Sprintf(
		"Подробности матча\n\nИгра: %s\nКоманды: %s vs %s\nНачало: %s\nСтатус: %s",
		gameName, t1, t2, ScheduledTime(m), status,
	)
}
