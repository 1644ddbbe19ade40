package models

// List is a to-do list owned by exactly one user. Tasks is populated by
// eager-loading repository reads so a fetched list never needs a second
// round trip for its tasks.
type List struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	OwnerID string `json:"UserId"`
	Tasks   []Task `json:"Tasks"`
}
