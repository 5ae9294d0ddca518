package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/apperr"
	"github.com/arjun-dev21/teamforge/internal/models"
	"github.com/arjun-dev21/teamforge/internal/repository"
)

// DefaultChannelName is created in every new workspace.
const DefaultChannelName = "general"

const duplicateWorkspaceMessage = "A workspace with same details already exists"

// WorkspaceCache is the read-through cache in front of GetByID. Nil is a
// valid value and disables caching.
type WorkspaceCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Workspace, bool)
	Set(ctx context.Context, ws *models.Workspace)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// Workspace orchestrates workspace lifecycle: creation with its initial
// admin member and default channel, membership-scoped deletion, join-code
// redemption, and reads.
type Workspace struct {
	workspaces repository.WorkspaceRepository
	channels   repository.ChannelRepository
	cache      WorkspaceCache
	logger     *zap.Logger
}

func NewWorkspace(
	workspaces repository.WorkspaceRepository,
	channels repository.ChannelRepository,
	cache WorkspaceCache,
	logger *zap.Logger,
) *Workspace {
	return &Workspace{
		workspaces: workspaces,
		channels:   channels,
		cache:      cache,
		logger:     logger,
	}
}

type CreateWorkspaceInput struct {
	Name        string
	Description string
	Owner       uuid.UUID
}

// newJoinCode derives a short invite code from a random UUID: the first
// six characters, uppercased. Uniqueness is not checked — collisions are
// tolerated and the only creation-time uniqueness gate is the database
// constraint on (name, description).
func newJoinCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// Create persists a workspace, attaches the creator as its admin member,
// and creates the default channel. The three writes run sequentially with
// no transaction or rollback: a failure partway leaves the earlier writes
// in place.
func (s *Workspace) Create(ctx context.Context, in CreateWorkspaceInput) (*models.Workspace, error) {
	ws, err := s.workspaces.Create(ctx, in.Name, in.Description, newJoinCode())
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, apperr.Validation(duplicateWorkspaceMessage, map[string][]string{
				"workspace": {duplicateWorkspaceMessage},
			})
		}
		return nil, err
	}

	// The creator is always the first member, with the admin role.
	if err := s.workspaces.AddMember(ctx, ws.ID, in.Owner, models.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.channels.Create(ctx, ws.ID, DefaultChannelName); err != nil {
		return nil, err
	}

	created, err := s.workspaces.GetByID(ctx, ws.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("owner_id", in.Owner.String()),
	)
	return created, nil
}

// GetAll returns every workspace. An empty result is not an error.
func (s *Workspace) GetAll(ctx context.Context) ([]models.Workspace, error) {
	return s.workspaces.GetAll(ctx)
}

// GetByID returns the workspace aggregate, consulting the cache first.
// An unknown ID is a domain not-found error.
func (s *Workspace) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	if s.cache != nil {
		if ws, ok := s.cache.Get(ctx, id); ok {
			return ws, nil
		}
	}

	ws, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperr.NotFound("Invalid id received", "workspace with this id does not exist")
	}

	if s.cache != nil {
		s.cache.Set(ctx, ws)
	}
	return ws, nil
}

// GetByName returns whatever the repository yields, including nil when
// no workspace carries the name.
func (s *Workspace) GetByName(ctx context.Context, name string) (*models.Workspace, error) {
	return s.workspaces.GetByName(ctx, name)
}

// DeleteByID removes a workspace and its channels, provided the acting
// user holds an admin member entry in it.
//
// The membership scan only tests for the admin role; a plain member is
// rejected with the same error a non-member gets. Channels are deleted
// before the workspace row, so a failure between the two steps leaves an
// orphaned workspace with dangling channel references — there is no
// compensating rollback.
func (s *Workspace) DeleteByID(ctx context.Context, workspaceID, userID uuid.UUID) error {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if ws == nil {
		return apperr.NotFound("Invalid data received", "workspace not found with this id")
	}

	allowed := false
	for _, m := range ws.Members {
		if m.MemberID == userID && m.Role == models.RoleAdmin {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.Unauthorized(
			"User is either not a member or an admin of the workspace",
			"User is not allowed to delete the workspace",
		)
	}

	channelIDs := make([]uuid.UUID, 0, len(ws.Channels))
	for _, ch := range ws.Channels {
		channelIDs = append(channelIDs, ch.ID)
	}

	deleted, err := s.channels.DeleteMany(ctx, channelIDs)
	if err != nil {
		return err
	}

	if err := s.workspaces.Delete(ctx, workspaceID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, workspaceID)
	}

	s.logger.Info("workspace deleted",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("deleted_by", userID.String()),
		zap.Int64("channels_deleted", deleted),
	)
	return nil
}

// ListForMember returns all workspaces whose member list contains the
// given member. Order comes from the repository.
func (s *Workspace) ListForMember(ctx context.Context, memberID uuid.UUID) ([]models.Workspace, error) {
	return s.workspaces.ListByMember(ctx, memberID)
}

// JoinByCode redeems an invite code: the caller is appended as a regular
// member of the workspace carrying the code. Joining a workspace the
// caller already belongs to succeeds without changing their role.
func (s *Workspace) JoinByCode(ctx context.Context, joinCode string, memberID uuid.UUID) (*models.Workspace, error) {
	ws, err := s.workspaces.GetByJoinCode(ctx, strings.ToUpper(joinCode))
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperr.NotFound("Invalid join code received", "workspace with this join code does not exist")
	}

	if err := s.workspaces.AddMember(ctx, ws.ID, memberID, models.RoleMember); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, ws.ID)
	}

	return s.workspaces.GetByID(ctx, ws.ID)
}
