package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/arjun-dev21/teamforge/internal/models"
)

// Every method takes a context.Context so request cancellation and
// deadlines propagate into the database driver. Each method performs one
// persistence operation and returns the driver error unchanged — error
// translation (duplicate key, validation) happens in the service layer.
//
// Unique-field lookups return nil, nil when nothing matches. Absence is
// a normal outcome there, not an error; services decide whether it is.

// UserRepository handles account persistence.
type UserRepository interface {
	// Create inserts a user and returns it with ID and timestamps set.
	// The PasswordHash field must already be hashed by the caller.
	Create(ctx context.Context, u *models.User) (*models.User, error)

	// GetAll returns every user, newest first.
	GetAll(ctx context.Context) ([]models.User, error)

	// GetByID returns a user by ID. Returns nil, nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail returns the user with the given email, or nil, nil.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsername returns the user with the given username, or nil, nil.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePassword overwrites the stored password hash for one user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes a user row. No-op if the row is already gone.
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkspaceRepository handles workspace rows plus their member entries.
type WorkspaceRepository interface {
	// Create inserts a bare workspace: no members, no channels yet.
	Create(ctx context.Context, name, description, joinCode string) (*models.Workspace, error)

	// GetAll returns every workspace without loading members or channels.
	GetAll(ctx context.Context) ([]models.Workspace, error)

	// GetByID returns one workspace with Members and Channels populated
	// (members ordered by join time, channels by creation time).
	// Returns nil, nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)

	// GetByName returns the first workspace with the given name, or nil, nil.
	GetByName(ctx context.Context, name string) (*models.Workspace, error)

	// GetByJoinCode returns the workspace carrying the join code, or nil, nil.
	GetByJoinCode(ctx context.Context, joinCode string) (*models.Workspace, error)

	// AddMember appends a member entry. Idempotent: adding an existing
	// member is a no-op, not an error.
	AddMember(ctx context.Context, workspaceID, memberID uuid.UUID, role string) error

	// Delete removes the workspace row; member entries go with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByMember returns all workspaces whose member list contains the
	// given member, most recently joined first.
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Workspace, error)
}

// ChannelRepository handles channel persistence.
type ChannelRepository interface {
	// Create inserts a channel into a workspace.
	Create(ctx context.Context, workspaceID uuid.UUID, name string) (*models.Channel, error)

	// GetByID returns one channel. Returns nil, nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Channel, error)

	// DeleteMany removes every channel whose ID appears in ids and
	// reports how many rows went away.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}
