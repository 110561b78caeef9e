package quiz

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed copydeck.yaml
var defaultDeck []byte

// Buttons holds the sidebar button labels. An empty label hides the button.
type Buttons struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Reveal   string `yaml:"reveal"`
	Previous string `yaml:"previous"`
	Submit   string `yaml:"submit"`
}

// Variant is one wording/layout of the quiz page.
type Variant struct {
	Name     string           `yaml:"-"`
	Title    string           `yaml:"title"`
	Welcome  string           `yaml:"welcome"`
	Buttons  Buttons          `yaml:"buttons"`
	Keywords bool             `yaml:"keywords"`
	Feedback map[Level]string `yaml:"feedback"`

	// RevealAnswer shows the reference on reveal even when nothing was typed
	RevealAnswer bool `yaml:"reveal_answer"`
}

// FeedbackFor returns the canned sentence for a level.
func (v Variant) FeedbackFor(level Level) string {
	return v.Feedback[level]
}

// Deck is a named set of variants.
type Deck struct {
	variants map[string]Variant
}

type deckFile struct {
	Variants map[string]Variant `yaml:"variants"`
}

// DefaultDeck parses the built-in deck.
func DefaultDeck() (*Deck, error) {
	return ParseDeck(strings.NewReader(string(defaultDeck)))
}

// ParseDeck reads a YAML deck and checks every variant names all levels.
func ParseDeck(r io.Reader) (*Deck, error) {
	var file deckFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode copy deck: %w", err)
	}
	if len(file.Variants) == 0 {
		return nil, fmt.Errorf("copy deck declares no variants")
	}
	deck := &Deck{variants: make(map[string]Variant, len(file.Variants))}
	for name, v := range file.Variants {
		key := strings.ToLower(strings.TrimSpace(name))
		v.Name = key
		for _, level := range Levels {
			if strings.TrimSpace(v.Feedback[level]) == "" {
				return nil, fmt.Errorf("variant %q has no %s feedback", name, level)
			}
		}
		if v.Buttons.Question == "" || v.Buttons.Submit == "" {
			return nil, fmt.Errorf("variant %q must label the question and submit buttons", name)
		}
		deck.variants[key] = v
	}
	return deck, nil
}

// Variant looks a variant up by name, case-insensitively.
func (d *Deck) Variant(name string) (Variant, bool) {
	v, ok := d.variants[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// Names lists the variant names, sorted.
func (d *Deck) Names() []string {
	names := make([]string, 0, len(d.variants))
	for n := range d.variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
