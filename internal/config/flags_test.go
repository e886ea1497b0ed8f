package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "0.0.0.0:3000",
			expectedAddr: NetAddress{Host: "0.0.0.0", Port: 3000},
		},
		{
			name:         "empty host listens on all interfaces",
			input:        ":3000",
			expectedAddr: NetAddress{Host: "", Port: 3000},
		},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "invalid host", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-d", "file:board.db",
		"-config", "/etc/post-board.yaml",
		"-password-hash-key", "pepper",
		"-token-sign-key", "sign",
		"-token-issuer", "issuer",
		"-token-duration", "24h",
		"-request-timeout", "5s",
		"-body-limit", "4096",
		"-rate-window", "30s",
		"-rate-limit", "10",
		"-delay-after", "5",
		"-delay-step", "100ms",
		"-max-delay", "2s",
		"-trusted-proxies", "10.0.0.1, 172.16.0.0/12",
		"-sweep-interval", "10s",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(4096), cfg.Server.BodyLimit)
	assert.Equal(t, "file:board.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/post-board.yaml", cfg.FilePath)

	assert.Equal(t, "pepper", cfg.App.PasswordHashKey)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)

	assert.Equal(t, 30*time.Second, cfg.Admission.Window)
	assert.Equal(t, 10, cfg.Admission.Limit)
	assert.Equal(t, 5, cfg.Admission.DelayAfter)
	assert.Equal(t, 100*time.Millisecond, cfg.Admission.DelayStep)
	assert.Equal(t, 2*time.Second, cfg.Admission.MaxDelay)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Admission.TrustedProxies)

	assert.Equal(t, 10*time.Second, cfg.Workers.SweepInterval)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "no-port"})
	assert.Error(t, err)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-grpc-address", "localhost:9090"})
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a", "b"}, splitList("a, ,b,"))
}
