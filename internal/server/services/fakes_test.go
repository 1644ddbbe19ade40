package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	associationsrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/associations"
	listsrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/lists"
	sessionsrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/sessions"
	tasksrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/listkeeper/internal/server/repositories/users"
)

// In-memory repositories backing service tests. They reproduce the
// observable storage behavior: unique email, advisory task->list
// references, duplicate association rows.

type memUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: map[string]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrorEmailExists
		}
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

type memListsRepo struct {
	mu    sync.Mutex
	lists map[string]*models.List
	tasks *memTasksRepo // for eager includes
}

func newMemListsRepo(tasks *memTasksRepo) *memListsRepo {
	return &memListsRepo{lists: map[string]*models.List{}, tasks: tasks}
}

func (r *memListsRepo) Create(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	cp := *list
	r.lists[list.ID] = &cp
	return list, nil
}

func (r *memListsRepo) GetByID(ctx context.Context, id string) (*models.List, error) {
	r.mu.Lock()
	list, ok := r.lists[id]
	r.mu.Unlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *list
	cp.Tasks = r.tasks.tasksOf(id)
	return &cp, nil
}

func (r *memListsRepo) ListAll(ctx context.Context) ([]models.List, error) {
	r.mu.Lock()
	ids := make([]string, 0, len(r.lists))
	for id := range r.lists {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	sort.Strings(ids)

	result := []models.List{}
	for _, id := range ids {
		list, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *list)
	}
	return result, nil
}

func (r *memListsRepo) UpdateTitle(ctx context.Context, id, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.lists[id]
	if !ok {
		return 0, nil
	}
	list.Title = title
	return 1, nil
}

func (r *memListsRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[id]; !ok {
		return 0, nil
	}
	delete(r.lists, id)
	return 1, nil
}

type memTasksRepo struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
}

func newMemTasksRepo() *memTasksRepo {
	return &memTasksRepo{tasks: map[string]*models.Task{}}
}

func (r *memTasksRepo) tasksOf(listID string) []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Task{}
	for _, t := range r.tasks {
		if t.ListID == listID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *memTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *task
	r.tasks[task.ID] = &cp
	return task, nil
}

func (r *memTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memTasksRepo) List(ctx context.Context, listID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Task{}
	for _, t := range r.tasks {
		if listID == "" || t.ListID == listID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memTasksRepo) UpdateCount(ctx context.Context, id string, count int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return 0, nil
	}
	t.Count = count
	return 1, nil
}

func (r *memTasksRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return 0, nil
	}
	delete(r.tasks, id)
	return 1, nil
}

type associationRow struct{ a, b string }

type memAssociationsRepo struct {
	mu          sync.Mutex
	memberships []associationRow // (student_id, list_id)
	completions []associationRow // (user_id, task_id)
}

func newMemAssociationsRepo() *memAssociationsRepo { return &memAssociationsRepo{} }

func (r *memAssociationsRepo) AddListMember(ctx context.Context, userID, listID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships = append(r.memberships, associationRow{userID, listID})
	return nil
}

func (r *memAssociationsRepo) ListMemberIDs(ctx context.Context, listID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, row := range r.memberships {
		if row.b == listID {
			ids = append(ids, row.a)
		}
	}
	return ids, nil
}

func (r *memAssociationsRepo) AddCompletion(ctx context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, associationRow{userID, taskID})
	return nil
}

func (r *memAssociationsRepo) TaskCompleterIDs(ctx context.Context, taskID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, row := range r.completions {
		if row.b == taskID {
			ids = append(ids, row.a)
		}
	}
	return ids, nil
}

type memSessionsRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionsRepo() *memSessionsRepo {
	return &memSessionsRepo{sessions: map[string]*models.Session{}}
}

func (r *memSessionsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = &models.Session{Token: token, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (r *memSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memSessionsRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

type memRepoManager struct {
	users        *memUsersRepo
	lists        *memListsRepo
	tasks        *memTasksRepo
	associations *memAssociationsRepo
	sessions     *memSessionsRepo
}

func newMemRepoManager() *memRepoManager {
	tasks := newMemTasksRepo()
	return &memRepoManager{
		users:        newMemUsersRepo(),
		lists:        newMemListsRepo(tasks),
		tasks:        tasks,
		associations: newMemAssociationsRepo(),
		sessions:     newMemSessionsRepo(),
	}
}

func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository               { return m.users }
func (m *memRepoManager) Lists(db dbx.DBTX) listsrepo.Repository               { return m.lists }
func (m *memRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository               { return m.tasks }
func (m *memRepoManager) Associations(db dbx.DBTX) associationsrepo.Repository { return m.associations }
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository         { return m.sessions }
func (m *memRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error  { return nil }
