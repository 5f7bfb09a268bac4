package services

import (
	"errors"
	"fmt"

	"postboard/app/errs"
	"postboard/app/repositories"
)

// Client-facing messages. These strings are part of the API.
const (
	MsgInvalidID           = "Please provide a valid ID."
	MsgMissingPostID       = "Please provide a post id."
	MsgPostBody            = "Please provide title and contents for the post."
	MsgCommentBody         = "Please provide text for the comment."
	MsgPostNotFound        = "The post with the specified ID does not exist."
	MsgPostUnavailable     = "The post information could not be retrieved."
	MsgPostsUnavailable    = "The posts information could not be retrieved."
	MsgPostNotModified     = "The post information could not be modified."
	MsgCommentsUnavailable = "The comments information could not be retrieved."
	MsgCommentUnavailable  = "The comment information could not be retrieved."
)

// MsgPostRemoved is the body of a successful delete.
func MsgPostRemoved(id int) string {
	return fmt.Sprintf("The post with the ID of %d was successfully deleted.", id)
}

// MsgPostNotRemoved is reported when the delete itself fails.
func MsgPostNotRemoved(id int) string {
	return fmt.Sprintf("The post with the ID of %d could not be removed.", id)
}

// lookupError maps a failed parent lookup to a 404. A missing row and a
// failing store read are reported with different messages.
func lookupError(err error) *errs.HTTPError {
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NewNotFoundError(MsgPostNotFound).WithCause(err)
	}
	return errs.NewNotFoundError(MsgPostUnavailable).WithCause(err)
}
