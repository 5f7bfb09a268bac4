// Package memory is a process-local Store used by tests and by the
// "memory" store driver. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

type PostRepository struct {
	posts  map[int]models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]models.Comment),
		nextID:   1,
	}
}

// PostRepository implementation
func (m *PostRepository) Find(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		p := post
		posts = append(posts, &p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) FindByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) Insert(ctx context.Context, post *models.Post) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := m.nextID
	m.nextID++
	m.posts[id] = models.Post{ID: id, Title: post.Title, Contents: post.Contents}
	return id, nil
}

func (m *PostRepository) Update(ctx context.Context, id int, changes *models.Post) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return 0, nil
	}
	post.Apply(changes)
	m.posts[id] = post
	return 1, nil
}

func (m *PostRepository) Remove(ctx context.Context, id int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return 0, nil
	}
	delete(m.posts, id)
	return 1, nil
}

// CommentRepository implementation
func (m *CommentRepository) Insert(ctx context.Context, comment *models.Comment) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := m.nextID
	m.nextID++
	m.comments[id] = models.Comment{ID: id, Text: comment.Text, PostID: comment.PostID}
	return id, nil
}

func (m *CommentRepository) FindByID(ctx context.Context, id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) FindByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			c := comment
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// Store bundles the memory repositories into a repositories.Store.
type Store struct {
	posts    *PostRepository
	comments *CommentRepository
}

func New() *Store {
	return &Store{
		posts:    NewPostRepository(),
		comments: NewCommentRepository(),
	}
}

func (s *Store) Posts() repositories.PostRepository {
	return s.posts
}

func (s *Store) Comments() repositories.CommentRepository {
	return s.comments
}

func (s *Store) Close() error {
	return nil
}
