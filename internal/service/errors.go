package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrForbidden           = errors.New("not allowed to modify this resource")
	ErrEditForbidden       = fmt.Errorf("%w: post is not yours to edit", ErrForbidden)
	ErrDeleteForbidden     = fmt.Errorf("%w: post is not yours to delete", ErrForbidden)

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenInvalid          = errors.New("token is invalid")
)
