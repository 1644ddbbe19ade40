package models

// Task belongs to one list via ListID. The relationship is advisory: the
// storage layer declares no foreign-key constraint, so a task may outlive
// its list. List is populated by eager-loading reads and is nil for orphans.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	ListID      string `json:"ListId"`
	List        *List  `json:"List,omitempty"`
}
