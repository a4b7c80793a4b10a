package models

// Settings holds process-wide configuration. Loaded once with the state blob
// and mutated in place via shallow-merge updates.
type Settings struct {
	SoundEnabled   bool `json:"sound_enabled"`
	AutoNext       bool `json:"auto_next"`
	ShowHint       bool `json:"show_hint"`
	TabSwitchInput bool `json:"tab_switch_input"`
	PracticeCount  int  `json:"practice_count"` // items per practice group
	PerDayNew      int  `json:"per_day_new"`    // default daily new-item goal
	PerDayReview   int  `json:"per_day_review"` // default daily review goal
}

// SettingsPatch carries a partial settings update; nil fields are left
// untouched by the merge.
type SettingsPatch struct {
	SoundEnabled   *bool `json:"sound_enabled,omitempty"`
	AutoNext       *bool `json:"auto_next,omitempty"`
	ShowHint       *bool `json:"show_hint,omitempty"`
	TabSwitchInput *bool `json:"tab_switch_input,omitempty"`
	PracticeCount  *int  `json:"practice_count,omitempty"`
	PerDayNew      *int  `json:"per_day_new,omitempty"`
	PerDayReview   *int  `json:"per_day_review,omitempty"`
}
