package service

import (
	"time"

	"github.com/MKhiriev/post-board/internal/utils"
)

// IDGenerator issues identifiers for new users and posts.
type IDGenerator interface {
	Generate() string
}

type options struct {
	now          func() time.Time
	ids          IDGenerator
	argon2Params utils.Argon2Params
}

// Option customises a service constructed by this package.
type Option func(*options)

// WithClock replaces time.Now as the source of timestamps and of the
// current time used for token validation.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithArgon2Params overrides the password hashing cost.
func WithArgon2Params(params utils.Argon2Params) Option {
	return func(o *options) {
		o.argon2Params = params
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		ids:          utils.NewUUIDGenerator(),
		argon2Params: utils.DefaultArgon2Params(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
