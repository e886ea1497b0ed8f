package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/metrics"
	"github.com/MKhiriev/post-board/internal/mock"
	"github.com/MKhiriev/post-board/internal/service"
	"github.com/MKhiriev/post-board/internal/utils"
	"github.com/MKhiriev/post-board/models"
)

// mockedServices bundles the gomock doubles behind a Handler.
type mockedServices struct {
	auth  *mock.MockAuthService
	users *mock.MockUserService
	posts *mock.MockPostService
}

func newMockedHandler(t *testing.T) (*Handler, mockedServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := mockedServices{
		auth:  mock.NewMockAuthService(ctrl),
		users: mock.NewMockUserService(ctrl),
		posts: mock.NewMockPostService(ctrl),
	}

	h := &Handler{
		services: &service.Services{
			AuthService: mocks.auth,
			UserService: mocks.users,
			PostService: mocks.posts,
		},
		metrics:  metrics.New(),
		settings: config.Server{BodyLimit: 100 << 10, RequestTimeout: 5 * time.Second},
		logger:   logger.Nop(),
	}

	return h, mocks
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// newJSONRequest builds a request with body marshalled from v. A string v is
// sent verbatim.
func newJSONRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()

	var body io.Reader
	switch value := v.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(value)
	default:
		data, err := json.Marshal(value)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return injectNopLogger(req)
}

// authenticated attaches the identity the auth middleware would attach.
func authenticated(r *http.Request, userID string) *http.Request {
	return r.WithContext(utils.WithAuthContext(r.Context(), models.AuthContext{UserID: userID}))
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// validationError builds the error the validation wrappers return.
func validationError(details ...error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errors.Join(details...))
}
