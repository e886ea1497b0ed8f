package models

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse wraps a single user or profile.
type UserResponse struct {
	User any `json:"user"`
}

// ListResponse wraps a collection together with the identity that asked
// for it.
type ListResponse[T any] struct {
	Data      []T         `json:"data"`
	Requester AuthContext `json:"requester"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response produced by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
