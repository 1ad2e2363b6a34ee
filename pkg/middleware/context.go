package middleware

import (
	"github.com/Ramsey-B/protea/pkg/context"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderUser is the header carrying the capturing user's display name
const HeaderUser = "X-User"

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = context.SetRequestID(ctx, requestID)
			ctx = context.SetMethod(ctx, req.Method)
			ctx = context.SetRoute(ctx, req.URL.Path)
			ctx = context.SetRemoteIP(ctx, c.RealIP())
			ctx = context.SetUser(ctx, req.Header.Get(HeaderUser))

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
