package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/utils"
	"github.com/MKhiriev/post-board/models"
)

// decodeJSON reads one JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return nil
}

// requester returns the verified identity attached by the auth middleware.
func requester(r *http.Request) (models.AuthContext, error) {
	authContext, ok := utils.GetAuthContext(r.Context())
	if !ok {
		return models.AuthContext{}, ErrMissingAuthContext
	}

	return authContext, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
