package services

import (
	"context"
	"errors"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.Find(ctx)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostsUnavailable).WithCause(err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	return post, nil
}

// CreatePost validates and stores a new post, then returns the stored row.
func (s *PostService) CreatePost(ctx context.Context, req *models.PostRequest) (*models.Post, error) {
	post := req.Post()
	if err := post.Validate(); err != nil {
		return nil, errs.NewBadRequestError(MsgPostBody, nil).WithCause(err)
	}

	id, err := s.postRepo.Insert(ctx, post)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostsUnavailable).WithCause(err)
	}

	// Insert only reports the id; read the row back.
	created, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostsUnavailable).WithCause(err)
	}
	return created, nil
}

// UpdatePost replaces the title and contents of an existing post and returns
// the stored row.
func (s *PostService) UpdatePost(ctx context.Context, id int, req *models.PostRequest) (*models.Post, error) {
	changes := req.Post()
	if err := changes.Validate(); err != nil {
		return nil, errs.NewBadRequestError(MsgPostBody, nil).WithCause(err)
	}

	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		return nil, errs.NewNotFoundError(MsgPostNotFound).WithCause(err)
	}

	count, err := s.postRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostNotModified).WithCause(err)
	}
	if count == 0 {
		// removed between the lookup and the update
		return nil, errs.NewNotFoundError(MsgPostNotFound)
	}

	updated, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostNotModified).WithCause(err)
	}
	return updated, nil
}

// DeletePost removes a post. Its comments are not touched.
func (s *PostService) DeletePost(ctx context.Context, id int) (*models.Message, error) {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NewNotFoundError(MsgPostNotFound).WithCause(err)
		}
		return nil, errs.NewInternalServerError(MsgPostNotRemoved(id)).WithCause(err)
	}

	count, err := s.postRepo.Remove(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgPostNotRemoved(id)).WithCause(err)
	}
	if count == 0 {
		return nil, errs.NewNotFoundError(MsgPostNotFound)
	}

	return &models.Message{Message: MsgPostRemoved(id)}, nil
}
