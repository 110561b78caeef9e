// Package quiz holds the interview question bank and the rules that walk it:
// category filtering, index navigation, similarity classification and
// keyword counting. Nothing in here performs I/O.
package quiz

import "strings"

// AllCategories is the filter value that selects every record.
const AllCategories = "All"

// DefaultCategories is shown when the loaded bank carries no categories.
var DefaultCategories = []string{"Behavioral", "Conceptual", "Technical"}

// QuestionRecord is one row of the question sheet.
type QuestionRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// InCategory reports whether the record passes the category filter.
func (q QuestionRecord) InCategory(category string) bool {
	if IsAll(category) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(q.Category), strings.TrimSpace(category))
}

// IsAll reports whether the filter value means "no filter".
func IsAll(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(category, AllCategories)
}
