package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arjun-dev21/teamforge/internal/models"
)

// memStore is a shared in-memory backend for the fake repositories. It
// records every mutating call so tests can assert sequencing, and lets
// individual operations be failed to exercise the partial-failure paths.
type memStore struct {
	workspaces map[uuid.UUID]models.Workspace
	members    map[uuid.UUID][]models.WorkspaceMember
	channels   map[uuid.UUID]models.Channel
	users      map[uuid.UUID]models.User

	calls []string

	failAddMember     error
	failCreateChannel error
	failDeleteMany    error
	failDelete        error
	failCreateUser    error
}

func newMemStore() *memStore {
	return &memStore{
		workspaces: make(map[uuid.UUID]models.Workspace),
		members:    make(map[uuid.UUID][]models.WorkspaceMember),
		channels:   make(map[uuid.UUID]models.Channel),
		users:      make(map[uuid.UUID]models.User),
	}
}

func uniqueViolationErr(constraint string) error {
	return &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: constraint,
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
	}
}

type fakeWorkspaceRepo struct {
	store *memStore
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, name, description, joinCode string) (*models.Workspace, error) {
	r.store.calls = append(r.store.calls, "workspaces.Create")

	for _, ws := range r.store.workspaces {
		if ws.Name == name && ws.Description == description {
			return nil, uniqueViolationErr("workspaces_name_description_key")
		}
	}

	ws := models.Workspace{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		JoinCode:    joinCode,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.store.workspaces[ws.ID] = ws

	out := ws
	out.Members = make([]models.WorkspaceMember, 0)
	out.Channels = make([]models.Channel, 0)
	return &out, nil
}

func (r *fakeWorkspaceRepo) GetAll(_ context.Context) ([]models.Workspace, error) {
	all := make([]models.Workspace, 0, len(r.store.workspaces))
	for _, ws := range r.store.workspaces {
		all = append(all, ws)
	}
	return all, nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Workspace, error) {
	ws, ok := r.store.workspaces[id]
	if !ok {
		return nil, nil
	}

	out := ws
	out.Members = append([]models.WorkspaceMember(nil), r.store.members[id]...)
	out.Channels = make([]models.Channel, 0)
	for _, ch := range r.store.channels {
		if ch.WorkspaceID == id {
			out.Channels = append(out.Channels, ch)
		}
	}
	return &out, nil
}

func (r *fakeWorkspaceRepo) GetByName(_ context.Context, name string) (*models.Workspace, error) {
	for _, ws := range r.store.workspaces {
		if ws.Name == name {
			out := ws
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) GetByJoinCode(_ context.Context, joinCode string) (*models.Workspace, error) {
	for _, ws := range r.store.workspaces {
		if ws.JoinCode == joinCode {
			out := ws
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) AddMember(_ context.Context, workspaceID, memberID uuid.UUID, role string) error {
	r.store.calls = append(r.store.calls, "workspaces.AddMember")
	if r.store.failAddMember != nil {
		return r.store.failAddMember
	}

	for _, m := range r.store.members[workspaceID] {
		if m.MemberID == memberID {
			return nil
		}
	}
	r.store.members[workspaceID] = append(r.store.members[workspaceID], models.WorkspaceMember{
		WorkspaceID: workspaceID,
		MemberID:    memberID,
		Role:        role,
		JoinedAt:    time.Now(),
	})
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.calls = append(r.store.calls, "workspaces.Delete")
	if r.store.failDelete != nil {
		return r.store.failDelete
	}

	delete(r.store.workspaces, id)
	delete(r.store.members, id)
	return nil
}

func (r *fakeWorkspaceRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]models.Workspace, error) {
	out := make([]models.Workspace, 0)
	for id, members := range r.store.members {
		for _, m := range members {
			if m.MemberID == memberID {
				out = append(out, r.store.workspaces[id])
				break
			}
		}
	}
	return out, nil
}

type fakeChannelRepo struct {
	store *memStore
}

func (r *fakeChannelRepo) Create(_ context.Context, workspaceID uuid.UUID, name string) (*models.Channel, error) {
	r.store.calls = append(r.store.calls, "channels.Create")
	if r.store.failCreateChannel != nil {
		return nil, r.store.failCreateChannel
	}

	ch := models.Channel{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	r.store.channels[ch.ID] = ch
	return &ch, nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Channel, error) {
	ch, ok := r.store.channels[id]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (r *fakeChannelRepo) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.store.calls = append(r.store.calls, "channels.DeleteMany")
	if r.store.failDeleteMany != nil {
		return 0, r.store.failDeleteMany
	}

	var deleted int64
	for _, id := range ids {
		if _, ok := r.store.channels[id]; ok {
			delete(r.store.channels, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if r.store.failCreateUser != nil {
		return nil, r.store.failCreateUser
	}

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return nil, uniqueViolationErr("users_email_key")
		}
		if existing.Username == u.Username {
			return nil, uniqueViolationErr("users_username_key")
		}
	}

	created := *u
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	r.store.users[created.ID] = created

	out := created
	return &out, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	all := make([]models.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := r.store.users[id]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	r.store.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.users, id)
	return nil
}

// fakeCache records cache traffic for the read-through tests.
type fakeCache struct {
	entries     map[uuid.UUID]*models.Workspace
	hits        int
	invalidated []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*models.Workspace)}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*models.Workspace, bool) {
	ws, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return ws, ok
}

func (c *fakeCache) Set(_ context.Context, ws *models.Workspace) {
	c.entries[ws.ID] = ws
}

func (c *fakeCache) Invalidate(_ context.Context, id uuid.UUID) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}
