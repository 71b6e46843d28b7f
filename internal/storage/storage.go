// Package storage persists bookmarks for the reference server.
package storage

import (
	"context"
	"errors"

	"github.com/yusi/shuqian/internal/model"
)

var (
	// ErrNotFound is returned when no bookmark has the requested ID.
	ErrNotFound = errors.New("bookmark not found")
	// ErrConflict is returned when creating a bookmark whose ID is taken.
	ErrConflict = errors.New("bookmark already exists")
)

// Repository is the server-side bookmark collection. List returns
// bookmarks in insertion order.
type Repository interface {
	List(ctx context.Context) ([]model.Bookmark, error)
	Get(ctx context.Context, id string) (model.Bookmark, error)
	Create(ctx context.Context, b model.Bookmark) error
	Update(ctx context.Context, id string, patch model.Patch) (model.Bookmark, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
