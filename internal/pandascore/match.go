package pandascore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/01HARE01/botcurs/internal/game"
)

// Match represents a match record from the PandaScore API. Only the
// fields the bot consumes are decoded; the raw payload is retained for
// the stream-link fallback scan.
type Match struct {
	ID          int64          `json:"id"`
	Status      string         `json:"status"`
	BeginAt     string         `json:"begin_at"`
	ScheduledAt string         `json:"scheduled_at"`
	Opponents   []OpponentSlot `json:"opponents"`
	Videogame   Videogame      `json:"videogame"`
	Streams     StreamSet      `json:"streams"`

	raw json.RawMessage
}

// OpponentSlot wraps one entry of the opponents list
type OpponentSlot struct {
	Opponent Opponent `json:"opponent"`
}

// Opponent is a team or player participating in a match
type Opponent struct {
	Name string `json:"name"`
}

// Videogame names the title a match belongs to
type Videogame struct {
	Name string `json:"name"`
}

// UnmarshalJSON decodes the consumed fields and keeps a copy of the raw
// record for heuristics that scan the whole payload.
func (m *Match) UnmarshalJSON(data []byte) error {
	type plain Match
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Match(p)
	m.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw returns the original JSON the match was decoded from.
func (m *Match) Raw() []byte {
	if m == nil {
		return nil
	}
	return m.raw
}

// StreamKind tags the shape the upstream used for the streams field.
type StreamKind int

const (
	StreamsMissing StreamKind = iota
	StreamsList
	StreamsWrapped
)

// Stream is a single broadcast descriptor
type Stream struct {
	RawURL string `json:"raw_url"`
	URL    string `json:"url"`
	Embed  string `json:"embed"`
}

// StreamSet is the streams field decoded once at the API boundary. The
// upstream serves it as a list, as an object wrapping a list, or not at
// all; malformed shapes decode to StreamsMissing rather than an error.
type StreamSet struct {
	Kind    StreamKind
	Entries []Stream
}

func (s *StreamSet) UnmarshalJSON(data []byte) error {
	*s = StreamSet{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '[':
		var entries []Stream
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil
		}
		s.Kind = StreamsList
		s.Entries = entries
	case '{':
		var wrapped struct {
			List []Stream `json:"list"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil || wrapped.List == nil {
			return nil
		}
		s.Kind = StreamsWrapped
		s.Entries = wrapped.List
	}
	return nil
}

// Upcoming retrieves the next matches for a game, newest first as served
// by the API, limited to perPage entries
func (c *Client) Upcoming(ctx context.Context, key game.Key, perPage int) ([]Match, error) {
	if perPage <= 0 {
		perPage = 10
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))

	var matches []Match
	path := fmt.Sprintf("%s/matches/upcoming", key)
	if err := c.get(ctx, path, query, &matches); err != nil {
		return nil, fmt.Errorf("failed to get upcoming matches: %w", err)
	}

	return matches, nil
}

// Running retrieves the currently live matches for a game
func (c *Client) Running(ctx context.Context, key game.Key) ([]Match, error) {
	var matches []Match
	path := fmt.Sprintf("%s/matches/running", key)
	if err := c.get(ctx, path, nil, &matches); err != nil {
		return nil, fmt.Errorf("failed to get running matches: %w", err)
	}

	return matches, nil
}

// MatchByID retrieves one match's full record
func (c *Client) MatchByID(ctx context.Context, id string) (*Match, error) {
	var match Match
	if err := c.get(ctx, "matches/"+id, nil, &match); err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return &match, nil
}
