package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPResolver_Invalid(t *testing.T) {
	for _, raw := range []string{"not-an-ip", "10.0.0.0/33", "10.0.0"} {
		_, err := NewIPResolver([]string{raw})
		assert.ErrorIs(t, err, ErrInvalidTrustedProxy, raw)
	}

	resolver, err := NewIPResolver([]string{" ", "10.0.0.0/8", "192.0.2.10", "::1"})
	require.NoError(t, err)
	assert.Len(t, resolver.trusted, 3)
}

func TestIPResolver_ClientIP(t *testing.T) {
	trusting, err := NewIPResolver([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)
	untrusting, err := NewIPResolver(nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		resolver   *IPResolver
		remoteAddr string
		headers    map[string][]string
		want       string
	}{
		{
			name:       "no proxies configured ignores headers",
			resolver:   untrusting,
			remoteAddr: "10.1.1.1:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"198.51.100.1"}},
			want:       "10.1.1.1",
		},
		{
			name:       "untrusted peer ignores headers",
			resolver:   trusting,
			remoteAddr: "203.0.113.5:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"198.51.100.1"}, "X-Real-IP": {"198.51.100.2"}},
			want:       "203.0.113.5",
		},
		{
			name:       "trusted peer single hop",
			resolver:   trusting,
			remoteAddr: "10.1.1.1:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"198.51.100.1"}},
			want:       "198.51.100.1",
		},
		{
			name:       "right-most untrusted hop wins over spoofed left entries",
			resolver:   trusting,
			remoteAddr: "10.1.1.1:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"1.2.3.4, 198.51.100.1, 10.2.2.2", "192.0.2.10"}},
			want:       "198.51.100.1",
		},
		{
			name:       "all hops trusted uses left-most",
			resolver:   trusting,
			remoteAddr: "10.1.1.1:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"10.3.3.3, 10.2.2.2"}},
			want:       "10.3.3.3",
		},
		{
			name:       "garbled right-most hop falls back to X-Real-IP",
			resolver:   trusting,
			remoteAddr: "10.1.1.1:5000",
			headers:    map[string][]string{"X-Forwarded-For": {"198.51.100.1, garbage"}, "X-Real-IP": {"198.51.100.9"}},
			want:       "198.51.100.9",
		},
		{
			name:       "no headers falls back to peer",
			resolver:   trusting,
			remoteAddr: "10.1.1.1:5000",
			want:       "10.1.1.1",
		},
		{
			name:       "ipv6 peer",
			resolver:   untrusting,
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			resolver:   untrusting,
			remoteAddr: "198.51.100.3",
			want:       "198.51.100.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, values := range tt.headers {
				for _, v := range values {
					req.Header.Add(key, v)
				}
			}

			assert.Equal(t, tt.want, tt.resolver.ClientIP(req))
		})
	}
}
