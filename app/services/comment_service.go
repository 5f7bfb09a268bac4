package services

import (
	"context"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err)
	}

	comments, err := s.commentRepo.FindByPost(ctx, post.ID)
	if err != nil {
		return nil, errs.NewNotFoundError(MsgCommentsUnavailable).WithCause(err)
	}
	return comments, nil
}

// CreateComment attaches a new comment to an existing post and returns the
// stored row.
func (s *CommentService) CreateComment(ctx context.Context, postID int, req *models.CommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.NewBadRequestError(MsgCommentBody, nil).WithCause(err)
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err)
	}

	comment := req.Comment()
	if err := comment.SetPost(post); err != nil {
		return nil, errs.NewInternalServerError(MsgCommentUnavailable).WithCause(err)
	}
	if err := comment.Validate(); err != nil {
		return nil, errs.NewBadRequestError(MsgCommentBody, nil).WithCause(err)
	}

	id, err := s.commentRepo.Insert(ctx, comment)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgCommentUnavailable).WithCause(err)
	}

	created, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError(MsgCommentUnavailable).WithCause(err)
	}
	return created, nil
}
