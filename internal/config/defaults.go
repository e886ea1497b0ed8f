package config

import "time"

// Default values applied before any other source.
const (
	DefaultTokenIssuer    = "post-board"
	DefaultTokenDuration  = 7 * 24 * time.Hour
	DefaultHTTPAddress    = "localhost:3000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultBodyLimit      = 100 * 1024
	DefaultDSN            = "memory://"
	DefaultWindow         = time.Minute
	DefaultLimit          = 60
	DefaultDelayAfter     = 30
	DefaultDelayStep      = 500 * time.Millisecond
	DefaultSweepInterval  = time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			BodyLimit:      DefaultBodyLimit,
		},
		Admission: Admission{
			Window:     DefaultWindow,
			Limit:      DefaultLimit,
			DelayAfter: DefaultDelayAfter,
			DelayStep:  DefaultDelayStep,
		},
		Workers: Workers{
			SweepInterval: DefaultSweepInterval,
		},
	}
}
