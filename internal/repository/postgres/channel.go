package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arjun-dev21/teamforge/internal/models"
)

type ChannelStore struct {
	pool Pool
}

func NewChannelStore(pool Pool) *ChannelStore {
	return &ChannelStore{pool: pool}
}

func (s *ChannelStore) Create(ctx context.Context, workspaceID uuid.UUID, name string) (*models.Channel, error) {
	query := `
		INSERT INTO channels (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, name, created_at`

	var ch models.Channel
	err := s.pool.QueryRow(ctx, query, workspaceID, name).Scan(
		&ch.ID,
		&ch.WorkspaceID,
		&ch.Name,
		&ch.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert channel: %w", err)
	}
	return &ch, nil
}

func (s *ChannelStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM channels
		WHERE id = $1`

	var ch models.Channel
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID,
		&ch.WorkspaceID,
		&ch.Name,
		&ch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}
	return &ch, nil
}

// DeleteMany removes every channel whose ID appears in ids. An empty id
// set deletes nothing and is not an error.
func (s *ChannelStore) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
		DELETE FROM channels
		WHERE id = ANY($1)`

	tag, err := s.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete channels: %w", err)
	}
	return tag.RowsAffected(), nil
}
