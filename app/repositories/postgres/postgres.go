// Package postgres implements repositories.Store on PostgreSQL through sqlx
// and the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"

	"postboard/app/models"
	"postboard/app/repositories"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// schema is applied on every open. There is no foreign key from comments to
// posts, so removing a post leaves its comments behind.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		contents TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		post_id INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
}

type Store struct {
	db       *sqlx.DB
	posts    *PostRepository
	comments *CommentRepository
}

// New connects to dsn and makes sure the tables exist.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to create tables")
		}
	}

	return &Store{
		db:       db,
		posts:    &PostRepository{db: db},
		comments: &CommentRepository{db: db},
	}, nil
}

func (s *Store) Posts() repositories.PostRepository {
	return s.posts
}

func (s *Store) Comments() repositories.CommentRepository {
	return s.comments
}

func (s *Store) Close() error {
	return s.db.Close()
}

type PostRepository struct {
	db *sqlx.DB
}

func (r *PostRepository) Find(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	if err := r.db.SelectContext(ctx, &posts, `SELECT id, title, contents FROM posts ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT id, title, contents FROM posts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get post %d", id)
	}
	return &post, nil
}

func (r *PostRepository) Insert(ctx context.Context, post *models.Post) (int, error) {
	var id int
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO posts (title, contents) VALUES ($1, $2) RETURNING id`,
		post.Title, post.Contents).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert post")
	}
	return id, nil
}

func (r *PostRepository) Update(ctx context.Context, id int, changes *models.Post) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, contents = $2 WHERE id = $3`,
		changes.Title, changes.Contents, id)
	if err != nil {
		return 0, errors.Wrapf(err, "update post %d", id)
	}
	return affected(res)
}

func (r *PostRepository) Remove(ctx context.Context, id int) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, errors.Wrapf(err, "remove post %d", id)
	}
	return affected(res)
}

type CommentRepository struct {
	db *sqlx.DB
}

func (r *CommentRepository) FindByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.SelectContext(ctx, &comments,
		`SELECT id, text, post_id FROM comments WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, errors.Wrapf(err, "list comments of post %d", postID)
	}
	return comments, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, `SELECT id, text, post_id FROM comments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get comment %d", id)
	}
	return &comment, nil
}

func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) (int, error) {
	var id int
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO comments (text, post_id) VALUES ($1, $2) RETURNING id`,
		comment.Text, comment.PostID).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert comment")
	}
	return id, nil
}

func affected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return int(n), nil
}
