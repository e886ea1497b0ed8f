package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/ratelimit"
	"github.com/MKhiriev/post-board/internal/service"
	"github.com/MKhiriev/post-board/internal/store"
	"github.com/MKhiriev/post-board/internal/utils"
	"github.com/MKhiriev/post-board/internal/validators"
	"github.com/MKhiriev/post-board/models"
)

const tooManyRequestsMessage = "Too many requests, please try again later."

// errorStatuses maps sentinels to HTTP statuses. The first entry err
// matches wins, so specific client errors come before internal ones.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ratelimit.ErrTooManyRequests, http.StatusTooManyRequests},

	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
	{ErrInvalidJSON, http.StatusBadRequest},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrMissingAuthContext, http.StatusUnauthorized},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenMalformed, http.StatusUnauthorized},
	{service.ErrTokenInvalidSignature, http.StatusUnauthorized},
	{service.ErrTokenExpired, http.StatusUnauthorized},
	{service.ErrTokenInvalid, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrUnknownAuthor, http.StatusNotFound},
	{store.ErrPostNotFound, http.StatusNotFound},
	{store.ErrEmailAlreadyExists, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

// errorMessageMap holds the client-facing text for errors whose own text
// is not meant for clients. Errors missing here use their own message when
// they map to a 4xx status.
var errorMessageMap = map[error]string{
	store.ErrEmailAlreadyExists:   "Email already exists",
	store.ErrUserNotFound:         "User not found",
	store.ErrUnknownAuthor:        "User not found",
	store.ErrPostNotFound:         "Post not found",
	service.ErrInvalidCredentials: "Invalid email or password",
	service.ErrEditForbidden:      "You can only edit your own posts",
	service.ErrDeleteForbidden:    "You can only delete your own posts",
	service.ErrForbidden:          "You can only modify your own posts",

	ratelimit.ErrTooManyRequests: tooManyRequestsMessage,
}

// validationDetails are appended to the 400 message in this order.
var validationDetails = []error{
	validators.ErrNoFieldsToUpdate,
	validators.ErrEmptyID,
	validators.ErrEmptyName,
	validators.ErrNameTooLong,
	validators.ErrInvalidEmail,
	validators.ErrEmptyPassword,
	validators.ErrPasswordTooLong,
	validators.ErrEmptyTitle,
	validators.ErrTitleTooLong,
}

// clientSentinels lists the errors whose text may be shown to clients, most
// specific first.
var clientSentinels = []error{
	store.ErrEmailAlreadyExists,
	store.ErrUnknownAuthor,
	store.ErrUserNotFound,
	store.ErrPostNotFound,
	service.ErrInvalidCredentials,
	service.ErrEditForbidden,
	service.ErrDeleteForbidden,
	service.ErrForbidden,
	service.ErrTokenMalformed,
	service.ErrTokenInvalidSignature,
	service.ErrTokenExpired,
	service.ErrTokenInvalid,
	ErrEmptyAuthorizationHeader,
	ErrInvalidAuthorizationHeader,
	ErrMissingAuthContext,
	ErrInvalidJSON,
	ErrBodyTooLarge,
	ratelimit.ErrTooManyRequests,
}

func statusFromError(err error) int {
	for _, entry := range errorStatuses {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the short, client-safe description of err.
// Internal errors never leak their text.
func messageFromError(err error) string {
	if errors.Is(err, service.ErrInvalidDataProvided) {
		details := make([]string, 0, len(validationDetails))
		for _, detail := range validationDetails {
			if errors.Is(err, detail) {
				details = append(details, detail.Error())
			}
		}
		if len(details) == 0 {
			return service.ErrInvalidDataProvided.Error()
		}
		return service.ErrInvalidDataProvided.Error() + ": " + strings.Join(details, "; ")
	}

	for _, sentinel := range clientSentinels {
		if !errors.Is(err, sentinel) {
			continue
		}
		if message, ok := errorMessageMap[sentinel]; ok {
			return message
		}
		return sentinel.Error()
	}

	return http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and answers with the mapped status and an
// {"error": "..."} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err)}, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}
