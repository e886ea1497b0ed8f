package http

import (
	"net/http"

	"github.com/MKhiriev/post-board/models"
)

const postDeletedMessage = "Post deleted successfully"

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListPosts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ListResponse[models.Post]{Data: posts, Requester: authContext}, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreatePostRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.CreatePost(r.Context(), authContext.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, post, http.StatusCreated)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdatePostRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), authContext.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, post, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.DeletePostRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), authContext.UserID, req.ID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: postDeletedMessage}, http.StatusOK)
}
