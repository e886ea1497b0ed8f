package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json or yaml file path with configs
//	-password-hash-key password hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-body-limit maximum request body size in bytes
//	-rate-window fixed window length (e.g., "60s")
//	-rate-limit requests allowed per window
//	-delay-after requests per window served without delay
//	-delay-step delay added per request over -delay-after
//	-max-delay cap for the throttle delay, 0 disables the cap
//	-trusted-proxies comma separated IPs or CIDRs of reverse proxies
//	-sweep-interval how often expired admission windows are dropped
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("post-board", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var configPath string
	var passwordHashKey string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var bodyLimit int64
	var window time.Duration
	var limit int
	var delayAfter int
	var delayStep time.Duration
	var maxDelay time.Duration
	var trustedProxies string
	var sweepInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&bodyLimit, "body-limit", 0, "Maximum request body size in bytes")
	fs.DurationVar(&window, "rate-window", 0, "Rate limit window (e.g., 60s)")
	fs.IntVar(&limit, "rate-limit", 0, "Requests allowed per window")
	fs.IntVar(&delayAfter, "delay-after", 0, "Requests per window served without delay")
	fs.DurationVar(&delayStep, "delay-step", 0, "Delay added per request over delay-after")
	fs.DurationVar(&maxDelay, "max-delay", 0, "Maximum throttle delay, 0 means unbounded")
	fs.StringVar(&trustedProxies, "trusted-proxies", "", "Comma separated trusted proxy IPs or CIDRs")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Interval for dropping expired admission windows")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			PasswordHashKey: passwordHashKey,
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			BodyLimit:      bodyLimit,
		},
		Admission: Admission{
			Window:         window,
			Limit:          limit,
			DelayAfter:     delayAfter,
			DelayStep:      delayStep,
			MaxDelay:       maxDelay,
			TrustedProxies: splitList(trustedProxies),
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		FilePath: configPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
