package models

// AppState is the whole persisted application state. It is serialized as a
// single blob and overwritten as a whole on every mutation.
type AppState struct {
	WordBooks    []Book                  `json:"word_books"`
	PoetryBooks  []Book                  `json:"poetry_books"`
	CustomBooks  []Book                  `json:"custom_books"`
	LearnRecords map[string]*LearnRecord `json:"learn_records"`
	DailyStats   map[string]*DailyStat   `json:"daily_stats"`
	UserDicts    []UserDict              `json:"user_dicts"`
	Settings     Settings                `json:"settings"`
}
