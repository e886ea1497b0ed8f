package http

import (
	"net/http"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/models"
)

// register creates an account and answers 201 with a token and the public
// view of the user.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", registeredUser.UserID).Msg("user registered")

	writeJSON(w, r, models.RegisterResponse{Token: token.String(), User: registeredUser}, http.StatusCreated)
}

// login verifies the credentials and answers with a fresh token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("id", foundUser.UserID).Msg("user successfully logged in")

	writeJSON(w, r, models.LoginResponse{Token: token.String()}, http.StatusOK)
}
