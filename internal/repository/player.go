package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
)

const playerKeyPrefix = "player:"

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, membership *entity.Membership) error
	GetByID(ctx context.Context, playerID string) (*entity.Membership, error)
	DeleteByID(ctx context.Context, playerID string) error
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, membership *entity.Membership) error {
	membershipJSON, err := json.Marshal(membership)
	if err != nil {
		return fmt.Errorf("failed to marshal membership: %w", err)
	}

	err = that.client.Set(ctx, playerKeyPrefix+membership.PlayerID, membershipJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set membership: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, playerID string) (*entity.Membership, error) {
	response, err := that.client.Get(ctx, playerKeyPrefix+playerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get membership by player id: %w", err)
	}

	var membership entity.Membership
	if err = json.Unmarshal([]byte(response), &membership); err != nil {
		return nil, fmt.Errorf("failed to unmarshal membership: %w", err)
	}

	return &membership, nil
}

func (that *dbPlayer) DeleteByID(ctx context.Context, playerID string) error {
	if err := that.client.Del(ctx, playerKeyPrefix+playerID).Err(); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	return nil
}
