package models

import "strings"

// Item represents a single practiceable entry: an English word, a poem line
// or a line of custom text. Items are immutable after load; only book-level
// and record-level state changes afterwards.
type Item struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Meaning  string `json:"meaning,omitempty"`
	Phonetic string `json:"phonetic,omitempty"`
	Example  string `json:"example,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// Key returns the content key used for de-duplication. Item ids are
// regenerated on every load pass for uncached books, so membership checks
// must go by normalized text instead.
func (i Item) Key() string {
	return strings.ToLower(strings.TrimSpace(i.Text))
}
