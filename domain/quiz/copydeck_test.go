package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDeck(t *testing.T) {
	deck, err := DefaultDeck()
	require.NoError(t, err)
	assert.Equal(t, []string{"classic", "compact", "keywords"}, deck.Names())

	v, ok := deck.Variant("Keywords")
	require.True(t, ok)
	assert.True(t, v.Keywords)
	assert.Equal(t, "keywords", v.Name)
	assert.Equal(t, "Outstanding work!", v.FeedbackFor(LevelOutstanding))
	assert.Equal(t, "Please provide your answer to the question to receive feedback.", v.FeedbackFor(LevelEmpty))
	assert.Empty(t, v.Buttons.Previous)

	compact, ok := deck.Variant("compact")
	require.True(t, ok)
	assert.False(t, compact.Keywords)
	assert.Equal(t, "Previous", compact.Buttons.Previous)
	assert.Equal(t, "Show answer", compact.Buttons.Reveal)
	assert.True(t, compact.RevealAnswer)
	assert.False(t, v.RevealAnswer)

	_, ok = deck.Variant("missing")
	assert.False(t, ok)
}

func TestParseDeckRequiresEveryLevel(t *testing.T) {
	_, err := ParseDeck(strings.NewReader(`
variants:
  short:
    buttons: {question: Q, submit: S}
    feedback:
      outstanding: "a"
      good: "b"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refine")
}

func TestParseDeckRejectsEmpty(t *testing.T) {
	_, err := ParseDeck(strings.NewReader("variants: {}\n"))
	assert.Error(t, err)

	_, err = ParseDeck(strings.NewReader(":::not yaml"))
	assert.Error(t, err)
}
