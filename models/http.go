package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /protected/me/update.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// CreatePostRequest is the body of POST /protected/posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is the body of PUT /protected/posts.
// Nil Title or Content are left unchanged.
type UpdatePostRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// DeletePostRequest is the body of DELETE /protected/posts.
type DeletePostRequest struct {
	ID string `json:"id"`
}
