package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/services"
	"postboard/app/validation"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController backed by store.
func NewCommentController(store repositories.Store) *CommentController {
	return &CommentController{
		commentService: services.NewCommentService(store.Comments(), store.Posts()),
	}
}

// Index lists the comments of the post in the route.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, services.MsgInvalidID)
	if err != nil {
		sendError(w, r, err)
		return
	}

	comments, err := cc.commentService.ListPostComments(r.Context(), postID)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, services.MsgMissingPostID)
	if err != nil {
		sendError(w, r, err)
		return
	}

	var req models.CommentRequest
	if err := validation.BindAndValidate(r, &req, services.MsgCommentBody); err != nil {
		sendError(w, r, err)
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), postID, &req)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
