package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/services"
	"postboard/app/validation"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// SetService sets the post service for testing
func (pc *PostController) SetService(service *services.PostService) {
	pc.postService = service
}

// NewPostController creates a new PostController backed by store.
func NewPostController(store repositories.Store) *PostController {
	return &PostController{
		postService: services.NewPostService(store.Posts()),
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, services.MsgInvalidID)
	if err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := validation.BindAndValidate(r, &req, services.MsgPostBody); err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &req)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles editing an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, services.MsgInvalidID)
	if err != nil {
		sendError(w, r, err)
		return
	}

	var req models.PostRequest
	if err := validation.BindAndValidate(r, &req, services.MsgPostBody); err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, &req)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, services.MsgInvalidID)
	if err != nil {
		sendError(w, r, err)
		return
	}

	msg, err := pc.postService.DeletePost(r.Context(), id)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, msg)
}
