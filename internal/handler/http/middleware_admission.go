package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/ratelimit"
)

const (
	headerRateLimitLimit     = "RateLimit-Limit"
	headerRateLimitRemaining = "RateLimit-Remaining"
	headerRateLimitReset     = "RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// withAdmission applies the hard cap and the throttle to every request,
// keyed by client IP.
//
// The RateLimit-* headers are written on every response. A request over
// the cap is answered 429 with Retry-After and never reaches next. A
// request whose client goes away during the throttle delay is dropped.
func (h *Handler) withAdmission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ip := h.admission.ClientIP.ClientIP(r)

		decision, err := h.admission.Controller.Admit(r.Context(), ip)
		setRateLimitHeaders(w.Header(), decision)

		switch {
		case errors.Is(err, ratelimit.ErrTooManyRequests):
			log.Warn().Str("ip", ip).Msg("rate limit exceeded")
			h.metrics.ObserveRejected()
			w.Header().Set(headerRetryAfter, ceilSeconds(decision.ResetAfter))
			writeError(w, r, err)
			return
		case err != nil:
			log.Debug().Err(err).Str("ip", ip).Msg("request dropped during throttle delay")
			return
		}

		if decision.Delay > 0 {
			log.Debug().Str("ip", ip).Dur("delay", decision.Delay).Msg("request throttled")
			h.metrics.ObserveDelay(decision.Delay)
		}

		next.ServeHTTP(w, r)
	})
}

func setRateLimitHeaders(header http.Header, decision ratelimit.Decision) {
	header.Set(headerRateLimitLimit, strconv.Itoa(decision.Limit))
	header.Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))
	header.Set(headerRateLimitReset, ceilSeconds(decision.ResetAfter))
}

// ceilSeconds renders d as whole seconds, rounded up, never negative.
func ceilSeconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	return strconv.FormatInt(int64(math.Ceil(d.Seconds())), 10)
}
