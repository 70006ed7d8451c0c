// Package redisstore backs the session and hand-off stores with redis, for
// deployments where the wizard runs behind more than one instance. Entries
// carry a TTL so abandoned sessions age out on their own.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

const (
	sessionPrefix = "wizard:session:"
	resultPrefix  = "wizard:result:"
	vectorPrefix  = "wizard:vector:"
)

// Store holds wizard sessions and hand-off results in redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a redis-backed store with the given entry TTL
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Save stores the wizard state for its session
func (s *Store) Save(ctx context.Context, state wizard.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+state.SessionID.String(), data, s.ttl).Err()
}

// Get fetches the wizard state for a session
func (s *Store) Get(ctx context.Context, id core.SessionID) (*wizard.State, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	var state wizard.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Delete removes the wizard state for a session
func (s *Store) Delete(ctx context.Context, id core.SessionID) error {
	return s.client.Del(ctx, sessionPrefix+id.String()).Err()
}

// SaveResult stores the merged result and the vector in a single
// transactional pipeline, so the report view never observes one without the
// other.
func (s *Store) SaveResult(ctx context.Context, id core.SessionID, result ports.SurveyResult, vector wizard.Vector) error {
	resultData, err := json.Marshal(result)
	if err != nil {
		return err
	}
	vectorData, err := json.Marshal(vector)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, resultPrefix+id.String(), resultData, s.ttl)
	pipe.Set(ctx, vectorPrefix+id.String(), vectorData, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetResult fetches the persisted result for a session
func (s *Store) GetResult(ctx context.Context, id core.SessionID) (*ports.SurveyResult, error) {
	data, err := s.client.Get(ctx, resultPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrNoResult
		}
		return nil, err
	}
	var result ports.SurveyResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVector fetches the persisted feature vector for a session
func (s *Store) GetVector(ctx context.Context, id core.SessionID) (wizard.Vector, error) {
	data, err := s.client.Get(ctx, vectorPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrNoResult
		}
		return nil, err
	}
	var vector wizard.Vector
	if err := json.Unmarshal([]byte(data), &vector); err != nil {
		return nil, err
	}
	return vector, nil
}
