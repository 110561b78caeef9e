package speech

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptEscapesText(t *testing.T) {
	out, err := Script(`He said "SELECT * FROM t"; </script><b>`, 1.25)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<script>"))
	assert.Equal(t, 1, strings.Count(s, "</script>"))
	assert.Contains(t, s, "1.25")
	assert.Contains(t, s, "SELECT * FROM t")
	assert.NotContains(t, s, "<b>")
}

func TestScriptBlankText(t *testing.T) {
	out, err := Script("  ", 1)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSpeaker(t *testing.T) {
	off := NewSpeaker(false, 2)
	out, err := off.Script("hello")
	require.NoError(t, err)
	assert.Empty(t, out)

	on := NewSpeaker(true, 0)
	assert.Equal(t, 1.0, on.Rate)
	out, err = on.Script("hello")
	require.NoError(t, err)
	assert.Contains(t, string(out), "speechSynthesis.speak")
	assert.Contains(t, string(out), "hello")
}
