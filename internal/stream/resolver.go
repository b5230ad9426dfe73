// Package stream extracts playable broadcast links from match records.
package stream

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/01HARE01/botcurs/internal/pandascore"
)

// urlPattern matches bare URLs inside a serialized match record.
var urlPattern = regexp.MustCompile(`https?://[^\s"'\\]+`)

// Resolve returns a canonical stream URL for the match, or "" when none
// can be found. Structured stream descriptors are scanned in declared
// order first; as a last resort the raw match JSON is searched for URL
// substrings. Parsing failures count as "no link found".
func Resolve(m *pandascore.Match) string {
	if m == nil {
		return ""
	}

	for _, s := range m.Streams.Entries {
		if link := Normalize(firstNonEmpty(s.RawURL, s.URL, s.Embed)); link != "" {
			return link
		}
	}

	for _, candidate := range urlPattern.FindAllString(string(m.Raw()), -1) {
		if link := Normalize(candidate); link != "" {
			return link
		}
	}

	return ""
}

// Normalize canonicalizes a candidate URL. Twitch player-embed URLs are
// rewritten to the channel page; URLs already on a known streaming
// platform pass through unchanged; everything else is not a stream link.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "player.twitch.tv") && strings.Contains(raw, "channel=") {
		if parsed, err := url.Parse(raw); err == nil {
			if channel := parsed.Query().Get("channel"); channel != "" {
				return "https://www.twitch.tv/" + channel
			}
		}
	}

	if strings.Contains(raw, "twitch.tv") || strings.Contains(raw, "youtube.com") || strings.Contains(raw, "youtu.be") {
		return raw
	}

	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
