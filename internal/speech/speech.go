// Package speech renders the browser text-to-speech snippets.
package speech

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const defaultRate = 1.0

// The text is placed in a JavaScript context, so html/template emits it as
// an escaped string literal.
var scriptTemplate = template.Must(template.New("speech").Parse(`<script>
(function () {
  if (!("speechSynthesis" in window)) { return; }
  var utterance = new SpeechSynthesisUtterance({{.Text}});
  utterance.rate = {{.Rate}};
  window.speechSynthesis.cancel();
  window.speechSynthesis.speak(utterance);
})();
</script>`))

// Speaker builds scripts at a fixed rate. A disabled speaker renders nothing.
type Speaker struct {
	Enabled bool
	Rate    float64
}

// NewSpeaker clamps non-positive rates to 1
func NewSpeaker(enabled bool, rate float64) Speaker {
	if rate <= 0 {
		rate = defaultRate
	}
	return Speaker{Enabled: enabled, Rate: rate}
}

// Script returns a snippet that reads text aloud, or "" when disabled or
// the text is blank
func (s Speaker) Script(text string) (template.HTML, error) {
	if !s.Enabled {
		return "", nil
	}
	return Script(text, s.Rate)
}

// Script returns a snippet that reads text aloud at rate
func Script(text string, rate float64) (template.HTML, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if rate <= 0 {
		rate = defaultRate
	}

	var buf bytes.Buffer
	err := scriptTemplate.Execute(&buf, struct {
		Text string
		Rate float64
	}{Text: text, Rate: rate})
	if err != nil {
		return "", fmt.Errorf("render speech script: %w", err)
	}
	return template.HTML(buf.String()), nil
}
