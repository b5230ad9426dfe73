package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01HARE01/botcurs/internal/pandascore"
)

func decodeMatch(t *testing.T, raw string) *pandascore.Match {
	t.Helper()
	var m pandascore.Match
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return &m
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"twitch embed", "https://player.twitch.tv/?channel=teamA&parent=example.com", "https://www.twitch.tv/teamA"},
		{"twitch embed path", "https://player.twitch.tv/embed?channel=foo", "https://www.twitch.tv/foo"},
		{"twitch passthrough", "https://www.twitch.tv/riotgames", "https://www.twitch.tv/riotgames"},
		{"youtube passthrough", "https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/watch?v=abc123"},
		{"youtu.be passthrough", "https://youtu.be/abc123", "https://youtu.be/abc123"},
		{"non-stream host", "https://example.com/some/page", ""},
		{"embed without channel falls through to host check", "https://player.twitch.tv/?video=123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestResolve_NilMatch(t *testing.T) {
	assert.Equal(t, "", Resolve(nil))
}

func TestResolve_ListFirstNormalizableWins(t *testing.T) {
	m := decodeMatch(t, `{
		"id": 1,
		"streams": [
			{"raw_url": "https://example.com/not-a-stream"},
			{"url": "https://www.twitch.tv/first"},
			{"raw_url": "https://www.twitch.tv/second"}
		]
	}`)
	assert.Equal(t, "https://www.twitch.tv/first", Resolve(m))
}

func TestResolve_FieldPriorityWithinDescriptor(t *testing.T) {
	// raw_url wins over url and embed within one descriptor, even when
	// it is the one that fails to normalize.
	m := decodeMatch(t, `{
		"id": 1,
		"streams": [
			{"raw_url": "https://nowhere.example.com", "url": "https://www.twitch.tv/ignored"},
			{"embed": "https://player.twitch.tv/?channel=fallback"}
		]
	}`)
	assert.Equal(t, "https://www.twitch.tv/fallback", Resolve(m))
}

func TestResolve_WrappedList(t *testing.T) {
	m := decodeMatch(t, `{
		"id": 2,
		"streams": {"list": [{"embed": "https://player.twitch.tv/?channel=teamA"}]}
	}`)
	assert.Equal(t, "https://www.twitch.tv/teamA", Resolve(m))
}

func TestResolve_RawFallback(t *testing.T) {
	// No structured streams, but the serialized record carries a link.
	m := decodeMatch(t, `{
		"id": 3,
		"live_url": "https://www.twitch.tv/hidden"
	}`)
	assert.Equal(t, "https://www.twitch.tv/hidden", Resolve(m))
}

func TestResolve_RawFallbackSkipsNonStreamURLs(t *testing.T) {
	m := decodeMatch(t, `{
		"id": 4,
		"league_url": "https://lolesports.com/schedule",
		"vod": "https://youtu.be/xyz"
	}`)
	assert.Equal(t, "https://youtu.be/xyz", Resolve(m))
}

func TestResolve_NoStreamData(t *testing.T) {
	m := decodeMatch(t, `{"id": 5, "name": "Grand Final"}`)
	assert.Equal(t, "", Resolve(m))
}

func TestResolve_MalformedStreamsField(t *testing.T) {
	m := decodeMatch(t, `{"id": 6, "streams": "broken"}`)
	assert.Equal(t, "", Resolve(m))
}
