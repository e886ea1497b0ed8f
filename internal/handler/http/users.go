package http

import (
	"net/http"

	"github.com/MKhiriev/post-board/models"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.GetProfile(r.Context(), authContext.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.UserResponse{User: profile}, http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateProfileRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), authContext.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.UserResponse{User: user}, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	authContext, err := requester(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ListResponse[models.User]{Data: users, Requester: authContext}, http.StatusOK)
}
