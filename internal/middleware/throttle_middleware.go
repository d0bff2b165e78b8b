package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/metrics"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/throttle"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Throttle limits attempts per client address. Attempts that end in a
// response below 400 are released, so only failures count.
func Throttle(store throttle.Store, m *metrics.Metrics, lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		res, err := store.Reserve(c.Request.Context(), key)
		if err != nil {
			// Fail open on store errors.
			lgr.Error().Err(err).Str("client", key).Msg("Throttle store unavailable")
			c.Next()
			return
		}

		if !res.Allowed {
			m.RecordThrottleRejection()
			lgr.Warn().Str("client", key).Dur("retryAfter", res.RetryAfter).Msg("Request throttled")
			writeRateLimited(c, &apperrors.RateLimitError{RetryAfter: res.RetryAfter})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			// The request context may be done once the handler has returned.
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
			defer cancel()
			if err := store.Release(ctx, res); err != nil {
				lgr.Error().Err(err).Str("client", key).Msg("Throttle release failed")
			}
		}
	}
}

func writeRateLimited(c *gin.Context, err *apperrors.RateLimitError) {
	body := dto.NewRateLimitResponse(err.RetryAfter)
	c.Header("Retry-After", strconv.FormatInt(body.RetryAfter, 10))
	c.JSON(http.StatusTooManyRequests, body)
}
