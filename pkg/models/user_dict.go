package models

// Built-in user dict ids.
const (
	DictCollected = "collected"
	DictWrong     = "wrong"
	DictMastered  = "mastered"
)

// UserDict is a curated, user-controlled subset of items. Membership is
// de-duplicated by Item.Key with insertion order preserved.
type UserDict struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Contains reports whether an item with the same content key is already a
// member of the dict.
func (d *UserDict) Contains(key string) bool {
	for _, it := range d.Items {
		if it.Key() == key {
			return true
		}
	}
	return false
}
