package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/arjun-dev21/teamforge/internal/apperr"
	"github.com/arjun-dev21/teamforge/internal/models"
	"github.com/arjun-dev21/teamforge/internal/repository"
)

// Channel exposes channel reads. Channel creation and deletion are owned
// by the workspace lifecycle.
type Channel struct {
	channels repository.ChannelRepository
}

func NewChannel(channels repository.ChannelRepository) *Channel {
	return &Channel{channels: channels}
}

// GetByID returns one channel, raising a not-found domain error for an
// unknown ID.
func (s *Channel) GetByID(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	ch, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, apperr.NotFound("Invalid id received", "channel with this id does not exist")
	}
	return ch, nil
}
