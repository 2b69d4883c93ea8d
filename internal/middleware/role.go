package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes
    "strings"  // strings normalizes role names

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole admits callers whose role claim, as stored by JWTAuth, is one
// of roles.  Matching ignores case and surrounding space.  Anyone else
// gets 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[normalizeRole(r)] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !allowed[normalizeRole(Role(c))] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

func normalizeRole(r string) string {
    return strings.ToUpper(strings.TrimSpace(r))
}
