package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "fmt"      // fmt formats numeric subject claims
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys populated by JWTAuth.
const (
    CtxUserID = "user_id"
    CtxRole   = "role"
    CtxToken  = "token"
    CtxClaims = "user"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// issued by the backend and injects the caller's identity into the request
// context.  The raw token is kept as well because the desk forwards it
// unchanged on every backend call made for this caller.  Handlers read the
// values with UserID, Role and BearerToken.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            // Only HMAC signatures are accepted; anything else is rejected
            // before the secret is handed out.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            sub := claimString(claims, "sub")
            if sub == "" {
                sub = claimString(claims, "user_id")
            }
            if sub == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            c.Set(CtxClaims, tok)
            c.Set(CtxUserID, sub)
            c.Set(CtxRole, claimString(claims, "role"))
            c.Set(CtxToken, raw)
            return next(c)
        }
    }
}

// claimString renders a string or numeric claim.  JSON numbers decode as
// float64, so integral IDs are printed without a fraction.
func claimString(claims jwt.MapClaims, key string) string {
    switch v := claims[key].(type) {
    case string:
        return v
    case float64:
        if v == float64(int64(v)) {
            return fmt.Sprintf("%d", int64(v))
        }
        return fmt.Sprintf("%g", v)
    }
    return ""
}

// UserID returns the authenticated caller's ID, or "" outside JWTAuth.
func UserID(c echo.Context) string {
    s, _ := c.Get(CtxUserID).(string)
    return s
}

// Role returns the caller's role claim.
func Role(c echo.Context) string {
    s, _ := c.Get(CtxRole).(string)
    return s
}

// BearerToken returns the caller's raw access token.
func BearerToken(c echo.Context) string {
    s, _ := c.Get(CtxToken).(string)
    return s
}
