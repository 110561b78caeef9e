package quiz

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// FrequentWordMin is how many times a word must repeat to be reported.
const FrequentWordMin = 3

// KeywordSet is a lowercased, de-duplicated list of job related terms.
type KeywordSet struct {
	terms []string
}

// NewKeywordSet normalises terms; blanks and duplicates are dropped.
func NewKeywordSet(terms []string) KeywordSet {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return KeywordSet{terms: out}
}

// ParseKeywords reads one keyword per line. Lines starting with '#' are
// comments.
func ParseKeywords(r io.Reader) (KeywordSet, error) {
	var terms []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return KeywordSet{}, fmt.Errorf("read keywords: %w", err)
	}
	return NewKeywordSet(terms), nil
}

// Len returns the number of distinct terms.
func (k KeywordSet) Len() int {
	return len(k.terms)
}

// Terms returns the sorted terms.
func (k KeywordSet) Terms() []string {
	out := make([]string, len(k.terms))
	copy(out, k.terms)
	return out
}

// KeywordReport is the outcome of scanning one response.
type KeywordReport struct {
	Count         int      `json:"count"`
	Terms         []string `json:"terms"`
	FrequentWords []string `json:"frequent_words"`
}

// Analyze lowercases the response, collects every keyword that occurs in it
// as a substring, and lists words repeated FrequentWordMin times or more.
func (k KeywordSet) Analyze(response string) KeywordReport {
	lower := strings.ToLower(response)
	var matched []string
	for _, term := range k.terms {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return KeywordReport{
		Count:         len(matched),
		Terms:         matched,
		FrequentWords: FrequentWords(lower, FrequentWordMin),
	}
}

// FrequentWords returns alphabetic tokens of text that occur at least min
// times, sorted. Matching is case-insensitive.
func FrequentWords(text string, min int) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	var out []string
	for word, n := range counts {
		if n >= min {
			out = append(out, word)
		}
	}
	sort.Strings(out)
	return out
}

// Summary renders the report as the sentence shown under the feedback.
func (r KeywordReport) Summary() string {
	terms := "None"
	if len(r.Terms) > 0 {
		terms = strings.Join(r.Terms, ", ")
	}
	words := "None"
	if len(r.FrequentWords) > 0 {
		words = strings.Join(r.FrequentWords, " ")
	}
	return fmt.Sprintf("You have used %d terms that are relevant to Data Analytics. These are: %s. "+
		"Additionally, the most used words in your response are: %s.", r.Count, terms, words)
}
