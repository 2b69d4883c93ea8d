package middleware

// identity.go derives the per-caller key used by the rate limiter and the
// response cache.  Callers that passed JWTAuth are keyed by their user ID;
// anything else falls back to "guest".

import "github.com/labstack/echo/v4"

func userID(c echo.Context) string {
    if v := UserID(c); v != "" {
        return v
    }
    return "guest"
}
