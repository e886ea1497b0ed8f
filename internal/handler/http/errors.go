// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMissingAuthContext is returned by protected handlers reached
	// without a verified identity in the request context.
	ErrMissingAuthContext = errors.New("request is not authenticated")
)

// Sentinel errors for request bodies.
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON for
	// the expected request type.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrBodyTooLarge is returned when the request body exceeds the
	// configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)
