// Package story persists archive stories as hashes in the search database,
// where the FT index picks them up by key prefix.
package story

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelvault/reelsearch/internal/db"
	"github.com/reelvault/reelsearch/internal/domain"
	domstory "github.com/reelvault/reelsearch/internal/domain/story"
)

// store is the consumer interface for story persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase/story.Repository.
type Repo struct {
	store store
}

// New creates a story repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a story. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, s *domstory.Story) (bool, error) {
	key := Key(s.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, toFields(s)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a story by ID.
func (r *Repo) Get(ctx context.Context, id string) (domstory.Story, error) {
	key := Key(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domstory.Story{}, domain.ErrStoryNotFound
		}
		return domstory.Story{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return fromFields(id, fields), nil
}

// Delete removes a story.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := Key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrStoryNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Key returns the hash key for a story ID.
func Key(id string) string {
	return domain.KeyPrefix + "story:" + id
}
