package services

import (
	"context"
	"net/http"
	"testing"

	"postboard/app/models"
	"postboard/app/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	posts := NewPostService(store.Posts())
	service := NewCommentService(store.Comments(), store.Posts())

	post, err := posts.CreatePost(ctx, &models.PostRequest{Title: "Test Post", Contents: "Test Contents"})
	require.NoError(t, err)

	t.Run("list comments on a fresh post", func(t *testing.T) {
		comments, err := service.ListPostComments(ctx, post.ID)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("create comment", func(t *testing.T) {
		comment, err := service.CreateComment(ctx, post.ID, &models.CommentRequest{Text: "First!"})
		require.NoError(t, err)
		assert.Equal(t, &models.Comment{ID: 1, Text: "First!", PostID: post.ID}, comment)
	})

	t.Run("list post comments", func(t *testing.T) {
		_, err := service.CreateComment(ctx, post.ID, &models.CommentRequest{Text: "Second"})
		require.NoError(t, err)

		comments, err := service.ListPostComments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "First!", comments[0].Text)
		assert.Equal(t, "Second", comments[1].Text)
	})

	t.Run("create comment without text", func(t *testing.T) {
		_, err := service.CreateComment(ctx, post.ID, &models.CommentRequest{})
		requireHTTPError(t, err, http.StatusBadRequest, MsgCommentBody)
	})

	t.Run("create comment on unknown post", func(t *testing.T) {
		_, err := service.CreateComment(ctx, 42, &models.CommentRequest{Text: "lost"})
		requireHTTPError(t, err, http.StatusNotFound, MsgPostNotFound)

		_, err = store.Comments().FindByID(ctx, 3)
		assert.Error(t, err)
	})

	t.Run("list comments on unknown post", func(t *testing.T) {
		_, err := service.ListPostComments(ctx, 42)
		requireHTTPError(t, err, http.StatusNotFound, MsgPostNotFound)
	})

	t.Run("comments outlive their post", func(t *testing.T) {
		_, err := posts.DeletePost(ctx, post.ID)
		require.NoError(t, err)

		orphans, err := store.Comments().FindByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, orphans, 2)

		_, err = service.ListPostComments(ctx, post.ID)
		requireHTTPError(t, err, http.StatusNotFound, MsgPostNotFound)
	})
}

func TestCommentServiceStoreFailures(t *testing.T) {
	ctx := context.Background()
	post := &models.Post{ID: 5, Title: "t", Contents: "c"}

	t.Run("parent lookup", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		postRepo.On("FindByID", ctx, 5).Return(nil, errStore)
		commentRepo := new(mockCommentRepo)

		_, err := NewCommentService(commentRepo, postRepo).ListPostComments(ctx, 5)
		requireHTTPError(t, err, http.StatusNotFound, MsgPostUnavailable)
		commentRepo.AssertNotCalled(t, "FindByPost", mock.Anything, mock.Anything)
	})

	t.Run("comment fetch", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		postRepo.On("FindByID", ctx, 5).Return(post, nil)
		commentRepo := new(mockCommentRepo)
		commentRepo.On("FindByPost", ctx, 5).Return(nil, errStore)

		_, err := NewCommentService(commentRepo, postRepo).ListPostComments(ctx, 5)
		requireHTTPError(t, err, http.StatusNotFound, MsgCommentsUnavailable)
	})

	t.Run("insert", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		postRepo.On("FindByID", ctx, 5).Return(post, nil)
		commentRepo := new(mockCommentRepo)
		commentRepo.On("Insert", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostID == 5 && c.Text == "hi"
		})).Return(0, errStore)

		_, err := NewCommentService(commentRepo, postRepo).CreateComment(ctx, 5, &models.CommentRequest{Text: "hi"})
		requireHTTPError(t, err, http.StatusInternalServerError, MsgCommentUnavailable)
		commentRepo.AssertExpectations(t)
	})

	t.Run("refetch after insert", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		postRepo.On("FindByID", ctx, 5).Return(post, nil)
		commentRepo := new(mockCommentRepo)
		commentRepo.On("Insert", ctx, mock.AnythingOfType("*models.Comment")).Return(9, nil)
		commentRepo.On("FindByID", ctx, 9).Return(nil, errStore)

		_, err := NewCommentService(commentRepo, postRepo).CreateComment(ctx, 5, &models.CommentRequest{Text: "hi"})
		requireHTTPError(t, err, http.StatusInternalServerError, MsgCommentUnavailable)
	})
}
