package domain

// Settings holds the persisted user preferences. All three flags affect
// future behavior only: flipping Shuffle changes the next reorder, not the
// current one, and flipping Persist changes whether future answers are
// recorded, not the existing history.
type Settings struct {
	Shuffle bool `json:"shuffle"`
	Persist bool `json:"persist"`
	Dark    bool `json:"dark"`
}

// DefaultSettings returns the settings used when nothing has been persisted
// yet or the stored record is unreadable.
func DefaultSettings() Settings {
	return Settings{Shuffle: true, Persist: true, Dark: true}
}
