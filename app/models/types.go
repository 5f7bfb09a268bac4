package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Post represents a blog post.
type Post struct {
	ID       int    `json:"id" db:"id"`
	Title    string `json:"title" db:"title" validate:"required"`
	Contents string `json:"contents" db:"contents" validate:"required"`
}

// Comment represents a comment attached to a single post.
type Comment struct {
	ID     int    `json:"id" db:"id"`
	Text   string `json:"text" db:"text" validate:"required"`
	PostID int    `json:"post_id" db:"post_id" validate:"required,gt=0"`
}

// PostRequest is the body accepted when creating or updating a post.
type PostRequest struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// CommentRequest is the body accepted when creating a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}
