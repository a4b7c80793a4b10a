package models

import "time"

// BookKind identifies the type of a practice book.
type BookKind string

const (
	KindWord   BookKind = "word"
	KindPoetry BookKind = "poetry"
	KindCustom BookKind = "custom"
)

// Unit groups consecutive line items of a poetry or custom book under one
// title, e.g. the lines of a single poem. Word books have no units.
type Unit struct {
	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Dynasty string `json:"dynasty,omitempty"`
	Start   int    `json:"start"` // index of the first line in Items
	Count   int    `json:"count"` // number of lines
}

// Book represents an ordered collection of practice items together with the
// user's progress through it.
type Book struct {
	ID          string   `json:"id"`
	Kind        BookKind `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Items       []Item   `json:"items"`
	Units       []Unit   `json:"units,omitempty"`

	Progress       int        `json:"progress"` // 0-100
	Complete       bool       `json:"complete,omitempty"`
	LastPractice   *time.Time `json:"last_practice,omitempty"`
	LastLearnIndex int        `json:"last_learn_index"` // sequential study cursor
	ItemCount      int        `json:"item_count"`       // may be known before Items are loaded
	PerDayNew      int        `json:"per_day_new,omitempty"`
}

// TotalItems returns the number of items in the book, preferring the
// preloaded count when the item content has not been fetched yet.
func (b *Book) TotalItems() int {
	if b.ItemCount > 0 {
		return b.ItemCount
	}
	return len(b.Items)
}
