package repositories

import (
	"context"
	"errors"

	"postboard/app/models"
)

// ErrNotFound is returned by lookups when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// PostRepository defines the interface for post data access.
//
// Insert, Update and Remove report ids and affected-row counts rather than
// rows; callers re-read with FindByID when they need the stored row.
type PostRepository interface {
	Find(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id int) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) (int, error)
	Update(ctx context.Context, id int, changes *models.Post) (int, error)
	Remove(ctx context.Context, id int) (int, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	FindByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	FindByID(ctx context.Context, id int) (*models.Comment, error)
	Insert(ctx context.Context, comment *models.Comment) (int, error)
}

// Store is an opened data store exposing both repositories.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Close() error
}
