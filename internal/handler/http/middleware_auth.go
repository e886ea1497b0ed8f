package http

import (
	"net/http"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the verified identity ([models.AuthContext]) in the request context via
// [utils.WithAuthContext] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized and a JSON
// error body in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value is not "Bearer <token>"
//     ([ErrInvalidAuthorizationHeader]).
//   - The token is malformed, badly signed, expired or otherwise invalid.
//
// The next handler is never called on rejection.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			writeError(w, r, err)
			return
		}

		ctx = utils.WithAuthContext(ctx, token.AuthContext())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
