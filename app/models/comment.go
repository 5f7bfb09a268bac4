package models

import (
	"errors"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// SetPost attaches the comment to its parent post.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}

func (r *CommentRequest) Validate() error {
	return validate.Struct(r)
}

// Comment builds an unsaved comment from the request.
func (r *CommentRequest) Comment() *Comment {
	return &Comment{Text: r.Text}
}
