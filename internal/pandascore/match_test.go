package pandascore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchUnmarshal_RetainsRaw(t *testing.T) {
	raw := `{"id": 42, "status": "running", "begin_at": "2024-01-01T10:00:00Z", "extra_field": "https://www.twitch.tv/somewhere"}`

	var m Match
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, int64(42), m.ID)
	assert.Equal(t, "running", m.Status)
	assert.Equal(t, "2024-01-01T10:00:00Z", m.BeginAt)
	assert.JSONEq(t, raw, string(m.Raw()))
}

func TestMatchUnmarshal_Opponents(t *testing.T) {
	raw := `{
		"id": 7,
		"opponents": [
			{"opponent": {"name": "A"}},
			{"opponent": {"name": "B"}}
		],
		"videogame": {"name": "LoL"}
	}`

	var m Match
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	require.Len(t, m.Opponents, 2)
	assert.Equal(t, "A", m.Opponents[0].Opponent.Name)
	assert.Equal(t, "B", m.Opponents[1].Opponent.Name)
	assert.Equal(t, "LoL", m.Videogame.Name)
}

func TestStreamSetUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantKind    StreamKind
		wantEntries int
	}{
		{"absent", `null`, StreamsMissing, 0},
		{"plain list", `[{"raw_url": "https://www.twitch.tv/a"}, {"url": "https://www.twitch.tv/b"}]`, StreamsList, 2},
		{"wrapped list", `{"list": [{"embed": "https://player.twitch.tv/?channel=c"}]}`, StreamsWrapped, 1},
		{"object without list key", `{"main": null}`, StreamsMissing, 0},
		{"unexpected scalar", `"twitch"`, StreamsMissing, 0},
		{"malformed entries", `[17, 23]`, StreamsMissing, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StreamSet
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.wantKind, s.Kind)
			assert.Len(t, s.Entries, tt.wantEntries)
		})
	}
}

func TestMatchUnmarshal_NullTimestamps(t *testing.T) {
	raw := `{"id": 9, "begin_at": null, "scheduled_at": null}`

	var m Match
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Empty(t, m.BeginAt)
	assert.Empty(t, m.ScheduledAt)
}
