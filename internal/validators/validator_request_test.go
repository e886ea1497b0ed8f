package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/post-board/models"
)

func ptr(s string) *string { return &s }

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   any
		fields  []string
		wantErr []error
	}{
		{
			name:  "valid register",
			input: models.RegisterRequest{Name: "Alice", Email: "a@x.io", Password: "secret"},
		},
		{
			name:    "register with empty fields",
			input:   models.RegisterRequest{},
			wantErr: []error{ErrEmptyName, ErrInvalidEmail, ErrEmptyPassword},
		},
		{
			name:    "register with display-name email",
			input:   models.RegisterRequest{Name: "Alice", Email: "Alice <a@x.io>", Password: "secret"},
			wantErr: []error{ErrInvalidEmail},
		},
		{
			name:    "register with blank name",
			input:   models.RegisterRequest{Name: "   ", Email: "a@x.io", Password: "secret"},
			wantErr: []error{ErrEmptyName},
		},
		{
			name:    "register with long name",
			input:   models.RegisterRequest{Name: strings.Repeat("n", maxNameLength+1), Email: "a@x.io", Password: "secret"},
			wantErr: []error{ErrNameTooLong},
		},
		{
			name:    "register with long password",
			input:   models.RegisterRequest{Name: "Alice", Email: "a@x.io", Password: strings.Repeat("p", maxPasswordLength+1)},
			wantErr: []error{ErrPasswordTooLong},
		},
		{
			name:   "register scoped to email ignores other fields",
			input:  models.RegisterRequest{Email: "a@x.io"},
			fields: []string{"email"},
		},
		{
			name:  "valid login",
			input: models.LoginRequest{Email: "a@x.io", Password: "secret"},
		},
		{
			name:    "login without password",
			input:   models.LoginRequest{Email: "a@x.io"},
			wantErr: []error{ErrEmptyPassword},
		},
		{
			name:    "profile update with nothing to change",
			input:   models.UpdateProfileRequest{},
			wantErr: []error{ErrNoFieldsToUpdate},
		},
		{
			name:  "profile update with only name",
			input: models.UpdateProfileRequest{Name: ptr("Alice A.")},
		},
		{
			name:    "profile update with bad email",
			input:   models.UpdateProfileRequest{Email: ptr("not-an-email")},
			wantErr: []error{ErrInvalidEmail},
		},
		{
			name:  "valid create post with empty content",
			input: models.CreatePostRequest{Title: "Hi"},
		},
		{
			name:    "create post without title",
			input:   models.CreatePostRequest{Content: "body"},
			wantErr: []error{ErrEmptyTitle},
		},
		{
			name:    "create post with long title",
			input:   models.CreatePostRequest{Title: strings.Repeat("t", maxTitleLength+1)},
			wantErr: []error{ErrTitleTooLong},
		},
		{
			name:  "valid update post",
			input: models.UpdatePostRequest{ID: "p1", Content: ptr("new")},
		},
		{
			name:    "update post without id",
			input:   models.UpdatePostRequest{Title: ptr("t")},
			wantErr: []error{ErrEmptyID},
		},
		{
			name:    "update post with nothing to change",
			input:   models.UpdatePostRequest{ID: "p1"},
			wantErr: []error{ErrNoFieldsToUpdate},
		},
		{
			name:    "update post with blank title",
			input:   models.UpdatePostRequest{ID: "p1", Title: ptr(" ")},
			wantErr: []error{ErrEmptyTitle},
		},
		{
			name:  "valid delete post",
			input: models.DeletePostRequest{ID: "p1"},
		},
		{
			name:    "delete post without id",
			input:   models.DeletePostRequest{},
			wantErr: []error{ErrEmptyID},
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: []error{ErrUnsupportedType},
		},
		{
			name:    "unknown field",
			input:   models.LoginRequest{Email: "a@x.io", Password: "secret"},
			fields:  []string{"login"},
			wantErr: []error{ErrUnknownField},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.input, tt.fields...)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
