package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ListService provides list operations. Mutations are keyed by id only:
// ownership is recorded on creation but not enforced on update or delete.
type ListService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewListService constructs a ListService.
func NewListService(db *sql.DB, m repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, repos: m}
}

// ListAll returns every list with its tasks nested, fetched in one round trip.
func (s *ListService) ListAll(ctx context.Context) ([]models.List, error) {
	result, err := s.repos.Lists(s.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching lists: %w", err)
	}
	return result, nil
}

// Get returns one list with its tasks nested, or (nil, nil) when absent.
func (s *ListService) Get(ctx context.Context, id string) (*models.List, error) {
	list, err := s.repos.Lists(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching list: %w", err)
	}
	return list, nil
}

// Create makes a new list owned by ownerID.
func (s *ListService) Create(ctx context.Context, ownerID, title string) (*models.List, error) {
	list := &models.List{
		ID:      uuid.NewString(),
		Title:   title,
		OwnerID: ownerID,
	}

	list, err := s.repos.Lists(s.db).Create(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("error creating list: %w", err)
	}
	return list, nil
}

// Update renames the list and returns the updated entity with tasks nested.
// An unknown id yields common.ErrorListNotFound.
func (s *ListService) Update(ctx context.Context, id, title string) (*models.List, error) {
	var updated *models.List

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Lists(tx)

		affected, err := repo.UpdateTitle(ctx, id, title)
		if err != nil {
			return fmt.Errorf("error updating list: %w", err)
		}
		if affected == 0 {
			return common.ErrorListNotFound
		}

		updated, err = repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error fetching updated list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the list by id and returns the number of deleted rows.
// Tasks and association rows referencing the list are left in place.
func (s *ListService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repos.Lists(s.db).Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting list: %w", err)
	}
	return n, nil
}

// Join records the user as a participant of the list. Participation rows
// are advisory: the list is not required to exist and repeated joins insert
// repeated rows.
func (s *ListService) Join(ctx context.Context, userID, listID string) error {
	if err := s.repos.Associations(s.db).AddListMember(ctx, userID, listID); err != nil {
		return fmt.Errorf("error joining list: %w", err)
	}
	return nil
}

// Members returns the user ids recorded as participants of the list.
func (s *ListService) Members(ctx context.Context, listID string) ([]string, error) {
	ids, err := s.repos.Associations(s.db).ListMemberIDs(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("error fetching list members: %w", err)
	}
	return ids, nil
}
