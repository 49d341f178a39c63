package glyph

import (
	"fmt"
	"strings"
)

// Mood is the label recorded for a day. The empty mood means none was recorded.
type Mood string

const (
	Excellent Mood = "excellent"
	Good      Mood = "good"
	Neutral   Mood = "neutral"
	Bad       Mood = "bad"
	Terrible  Mood = "terrible"
	NoMood    Mood = ""
)

// MoodGlyph describes how a mood is scored and drawn.
type MoodGlyph struct {
	Mood  Mood   `json:"mood"`
	Score int    `json:"score"`
	Emoji string `json:"emoji"`
}

var moods = []MoodGlyph{
	{Mood: Excellent, Score: 5, Emoji: "😊"},
	{Mood: Good, Score: 4, Emoji: "🙂"},
	{Mood: Neutral, Score: 3, Emoji: "😐"},
	{Mood: Bad, Score: 2, Emoji: "😔"},
	{Mood: Terrible, Score: 1, Emoji: "😢"},
}

// DefaultMoods returns the mood table, best first.
func DefaultMoods() []MoodGlyph {
	out := make([]MoodGlyph, len(moods))
	copy(out, moods)
	return out
}

func (m Mood) glyph() (MoodGlyph, bool) {
	for _, g := range moods {
		if g.Mood == m {
			return g, true
		}
	}
	return MoodGlyph{}, false
}

// Valid reports whether m is one of the five known moods.
func (m Mood) Valid() bool {
	_, ok := m.glyph()
	return ok
}

// Score maps the mood to 1..5; absent or unknown moods score 0.
func (m Mood) Score() int {
	g, _ := m.glyph()
	return g.Score
}

// Emoji returns the face for the mood, or "" when there is none.
func (m Mood) Emoji() string {
	g, _ := m.glyph()
	return g.Emoji
}

// EmojiOr returns the face for the mood, falling back to the neutral face.
func (m Mood) EmojiOr() string {
	if e := m.Emoji(); e != "" {
		return e
	}
	return Neutral.Emoji()
}

func (m Mood) String() string {
	return string(m)
}

// MoodForScore maps a 1..5 score back to its mood.
func MoodForScore(score int) (Mood, bool) {
	for _, g := range moods {
		if g.Score == score {
			return g.Mood, true
		}
	}
	return NoMood, false
}

// ParseMood accepts a mood name in any case. The empty string parses as NoMood.
func ParseMood(raw string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if m == NoMood || m.Valid() {
		return m, nil
	}
	return NoMood, fmt.Errorf("glyph: unknown mood %q", raw)
}
