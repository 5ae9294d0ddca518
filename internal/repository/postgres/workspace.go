package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arjun-dev21/teamforge/internal/models"
)

type WorkspaceStore struct {
	pool Pool
}

func NewWorkspaceStore(pool Pool) *WorkspaceStore {
	return &WorkspaceStore{pool: pool}
}

const workspaceColumns = `id, name, description, join_code, created_at, updated_at`

func scanWorkspace(row pgx.Row, ws *models.Workspace) error {
	return row.Scan(
		&ws.ID,
		&ws.Name,
		&ws.Description,
		&ws.JoinCode,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
}

// Create inserts a bare workspace row. Members and channels are attached
// by separate calls — the creation sequence lives in the service layer.
func (s *WorkspaceStore) Create(ctx context.Context, name, description, joinCode string) (*models.Workspace, error) {
	query := `
		INSERT INTO workspaces (name, description, join_code)
		VALUES ($1, $2, $3)
		RETURNING ` + workspaceColumns

	var ws models.Workspace
	row := s.pool.QueryRow(ctx, query, name, description, joinCode)
	if err := scanWorkspace(row, &ws); err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}
	ws.Members = make([]models.WorkspaceMember, 0)
	ws.Channels = make([]models.Channel, 0)
	return &ws, nil
}

func (s *WorkspaceStore) GetAll(ctx context.Context) ([]models.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	return collectWorkspaces(rows)
}

// GetByID returns the full workspace aggregate: the row itself plus its
// member entries (ordered by join time) and channels (ordered by
// creation time). Three queries, no transaction — reads tolerate the
// same interleaving the write paths do.
func (s *WorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		WHERE id = $1`

	var ws models.Workspace
	if err := scanWorkspace(s.pool.QueryRow(ctx, query, id), &ws); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	members, err := s.listMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	ws.Members = members

	channels, err := s.listChannels(ctx, id)
	if err != nil {
		return nil, err
	}
	ws.Channels = channels

	return &ws, nil
}

func (s *WorkspaceStore) GetByName(ctx context.Context, name string) (*models.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		WHERE name = $1`

	var ws models.Workspace
	if err := scanWorkspace(s.pool.QueryRow(ctx, query, name), &ws); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace by name: %w", err)
	}
	return &ws, nil
}

func (s *WorkspaceStore) GetByJoinCode(ctx context.Context, joinCode string) (*models.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		WHERE join_code = $1`

	var ws models.Workspace
	if err := scanWorkspace(s.pool.QueryRow(ctx, query, joinCode), &ws); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace by join code: %w", err)
	}
	return &ws, nil
}

// AddMember appends a member entry. ON CONFLICT DO NOTHING makes the
// call idempotent: joining a workspace twice succeeds silently.
func (s *WorkspaceStore) AddMember(ctx context.Context, workspaceID, memberID uuid.UUID, role string) error {
	query := `
		INSERT INTO workspace_members (workspace_id, member_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, member_id) DO NOTHING`

	_, err := s.pool.Exec(ctx, query, workspaceID, memberID, role)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// Delete removes the workspace row. Member entries cascade with it;
// channels do not — they are removed first by the service layer.
func (s *WorkspaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM workspaces
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// ListByMember returns every workspace the member belongs to, most
// recently joined first.
func (s *WorkspaceStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.description, w.join_code, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.member_id = $1
		ORDER BY m.joined_at DESC`

	rows, err := s.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces by member: %w", err)
	}
	defer rows.Close()

	return collectWorkspaces(rows)
}

func (s *WorkspaceStore) listMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, member_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY joined_at`

	rows, err := s.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]models.WorkspaceMember, 0)
	for rows.Next() {
		var m models.WorkspaceMember
		if err := rows.Scan(&m.WorkspaceID, &m.MemberID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

func (s *WorkspaceStore) listChannels(ctx context.Context, workspaceID uuid.UUID) ([]models.Channel, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM channels
		WHERE workspace_id = $1
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]models.Channel, 0)
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.WorkspaceID, &ch.Name, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}

func collectWorkspaces(rows pgx.Rows) ([]models.Workspace, error) {
	workspaces := make([]models.Workspace, 0)
	for rows.Next() {
		var ws models.Workspace
		if err := scanWorkspace(rows, &ws); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}

	return workspaces, nil
}
