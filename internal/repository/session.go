package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
	"github.com/rocketscienceinc/gridgame-engine/internal/gridgame"
)

// SessionRepository publishes authoritative session snapshots for observers.
// It is a publication channel, not a durability layer.
type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, state gridgame.State) error
	GetByID(ctx context.Context, id string) (gridgame.State, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, state gridgame.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal session state: %w", err)
	}

	sessionKey := "session:" + state.ID
	if err = that.client.Set(ctx, sessionKey, stateJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session state: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (gridgame.State, error) {
	sessionKey := "session:" + id

	response, err := that.client.Get(ctx, sessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return gridgame.State{}, apperror.ErrSessionNotFound
	}

	if err != nil {
		return gridgame.State{}, fmt.Errorf("failed to get session by ID: %w", err)
	}

	var state gridgame.State
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return gridgame.State{}, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return state, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	sessionKey := "session:" + id

	deleted, err := that.client.Del(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}
