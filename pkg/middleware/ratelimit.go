package middleware

import (
	"net/http"

	"goodwill-valuation/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Response represents the error response structure
type Response struct {
	Message string `json:"message"`
}

// NewRateLimiterMiddleware limits requests per client IP. A non-positive
// rate disables limiting.
func NewRateLimiterMiddleware(cfg config.API) echo.MiddlewareFunc {
	rlConfig := middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return cfg.RateLimit <= 0 || c.Path() == "/healthz"
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateBurst,
				ExpiresIn: cfg.RateExpiresIn,
			},
		),

		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},

		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, Response{
				Message: "Access forbidden: Rate limiter error occurred",
			})
		},

		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, Response{
				Message: "Too many requests: Rate limit exceeded. Please try again later",
			})
		},
	}

	return middleware.RateLimiterWithConfig(rlConfig)
}
