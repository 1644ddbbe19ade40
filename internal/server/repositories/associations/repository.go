// Package associations declares the persistence contract for the two
// many-to-many join tables: students_lists (user participates in list) and
// completes (user has engaged with task). Both tables hold nothing but the
// two foreign keys, declare no uniqueness constraint, and reference rows
// that may no longer exist.
package associations

import "context"

// Repository defines storage operations for association rows.
type Repository interface {
	// AddListMember records that a user participates in a list. Repeated
	// calls insert repeated rows.
	AddListMember(ctx context.Context, userID, listID string) error

	// ListMemberIDs returns the user ids recorded against a list, in
	// insertion order, including duplicates.
	ListMemberIDs(ctx context.Context, listID string) ([]string, error)

	// AddCompletion records that a user has engaged with a task.
	AddCompletion(ctx context.Context, userID, taskID string) error

	// TaskCompleterIDs returns the user ids recorded against a task.
	TaskCompleterIDs(ctx context.Context, taskID string) ([]string, error)
}
