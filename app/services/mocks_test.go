package services

import (
	"context"

	"postboard/app/models"

	"github.com/stretchr/testify/mock"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Find(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *mockPostRepo) FindByID(ctx context.Context, id int) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostRepo) Insert(ctx context.Context, post *models.Post) (int, error) {
	args := m.Called(ctx, post)
	return args.Int(0), args.Error(1)
}

func (m *mockPostRepo) Update(ctx context.Context, id int, changes *models.Post) (int, error) {
	args := m.Called(ctx, id, changes)
	return args.Int(0), args.Error(1)
}

func (m *mockPostRepo) Remove(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) FindByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*models.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id int) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) Insert(ctx context.Context, comment *models.Comment) (int, error) {
	args := m.Called(ctx, comment)
	return args.Int(0), args.Error(1)
}
