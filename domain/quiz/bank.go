package quiz

import (
	"fmt"
	"strings"
)

// Bank is an immutable, ordered collection of question records.
type Bank struct {
	records []QuestionRecord
}

// NewBank copies the records into a bank.
func NewBank(records []QuestionRecord) *Bank {
	out := make([]QuestionRecord, len(records))
	copy(out, records)
	return &Bank{records: out}
}

// Len returns the number of records.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// Records returns a copy of every record in sheet order.
func (b *Bank) Records() []QuestionRecord {
	if b == nil {
		return nil
	}
	out := make([]QuestionRecord, len(b.records))
	copy(out, b.records)
	return out
}

// Filter returns the records in the given category, preserving order.
// "All" and the empty string select everything.
func (b *Bank) Filter(category string) []QuestionRecord {
	if b == nil {
		return nil
	}
	if IsAll(category) {
		return b.Records()
	}
	var out []QuestionRecord
	for _, r := range b.records {
		if r.InCategory(category) {
			out = append(out, r)
		}
	}
	return out
}

// Categories lists "All" followed by distinct categories in first-seen order.
func (b *Bank) Categories() []string {
	seen := make(map[string]bool)
	cats := []string{AllCategories}
	for _, r := range b.Records() {
		name := strings.TrimSpace(r.Category)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		cats = append(cats, name)
	}
	if len(cats) == 1 {
		cats = append(cats, DefaultCategories...)
	}
	return cats
}

// Corpus returns every question and answer text, used to fit local
// embedding vocabularies.
func (b *Bank) Corpus() []string {
	corpus := make([]string, 0, 2*b.Len())
	for _, r := range b.Records() {
		corpus = append(corpus, r.Question, r.Answer)
	}
	return corpus
}

var headerAliases = map[string][]string{
	"question": {"questions", "question"},
	"answer":   {"answers", "answer"},
	"category": {"category", "categories"},
}

// ParseTable converts a header row plus data rows into records. Columns are
// found by header name, case-insensitively. Rows without a question are
// skipped; short rows are padded.
func ParseTable(headers []string, rows [][]string) ([]QuestionRecord, error) {
	index := make(map[string]int)
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int)
	for field, aliases := range headerAliases {
		cols[field] = -1
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				break
			}
		}
	}
	if cols["question"] < 0 || cols["answer"] < 0 {
		return nil, fmt.Errorf("question sheet must have 'questions' and 'answers' columns, got %v", headers)
	}

	cell := func(row []string, field string) string {
		i := cols[field]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]QuestionRecord, 0, len(rows))
	for _, row := range rows {
		q := cell(row, "question")
		if q == "" {
			continue
		}
		records = append(records, QuestionRecord{
			Question: q,
			Answer:   cell(row, "answer"),
			Category: cell(row, "category"),
		})
	}
	return records, nil
}
