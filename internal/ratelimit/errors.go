package ratelimit

import "errors"

var (
	// ErrTooManyRequests is returned when a client exceeded the hard cap of
	// the current window.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidTrustedProxy is returned when a trusted proxy entry is
	// neither an IP address nor a CIDR prefix.
	ErrInvalidTrustedProxy = errors.New("invalid trusted proxy")

	// ErrInvalidPolicy is returned when limiter or throttle settings are out
	// of range.
	ErrInvalidPolicy = errors.New("invalid admission policy")
)
