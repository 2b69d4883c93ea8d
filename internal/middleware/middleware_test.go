package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/Simplextsd/grow-aura-engage/internal/config"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
    t.Helper()
    s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
    if err != nil {
        t.Fatalf("sign: %v", err)
    }
    return s
}

// whoami echoes what JWTAuth put into the context.
func whoami(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"user": UserID(c), "role": Role(c), "token": BearerToken(c)})
}

func serve(h echo.HandlerFunc, mw []echo.MiddlewareFunc, authz string) *httptest.ResponseRecorder {
    e := echo.New()
    e.GET("/me", h, mw...)
    req := httptest.NewRequest(http.MethodGet, "/me", nil)
    if authz != "" {
        req.Header.Set("Authorization", authz)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestJWTAuth(t *testing.T) {
    mw := []echo.MiddlewareFunc{JWTAuth(testSecret)}
    exp := time.Now().Add(time.Hour).Unix()

    t.Run("numeric subject", func(t *testing.T) {
        tok := sign(t, jwt.MapClaims{"sub": 17, "role": "AGENT", "exp": exp})
        rec := serve(whoami, mw, "Bearer "+tok)
        if rec.Code != http.StatusOK {
            t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
        }
        body := rec.Body.String()
        for _, want := range []string{`"user":"17"`, `"role":"AGENT"`, `"token":"` + tok + `"`} {
            if !strings.Contains(body, want) {
                t.Fatalf("expected %s in %s", want, body)
            }
        }
    })

    t.Run("string subject", func(t *testing.T) {
        tok := sign(t, jwt.MapClaims{"sub": "u-9", "role": "ADMIN", "exp": exp})
        if rec := serve(whoami, mw, "Bearer "+tok); !strings.Contains(rec.Body.String(), `"user":"u-9"`) {
            t.Fatalf("unexpected body %s", rec.Body)
        }
    })

    wrongSecret, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("other"))
    cases := map[string]string{
        "missing header": "",
        "wrong scheme":   "Basic abc",
        "garbage":        "Bearer not-a-jwt",
        "wrong secret":   "Bearer " + wrongSecret,
        "expired":        "Bearer " + sign(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Minute).Unix()}),
        "no subject":     "Bearer " + sign(t, jwt.MapClaims{"role": "AGENT"}),
    }
    for name, authz := range cases {
        t.Run(name, func(t *testing.T) {
            if rec := serve(whoami, mw, authz); rec.Code != http.StatusUnauthorized {
                t.Fatalf("expected 401, got %d", rec.Code)
            }
        })
    }
}

func TestRequireRole(t *testing.T) {
    mw := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole("AGENT", "ADMIN")}

    if rec := serve(whoami, mw, "Bearer "+sign(t, jwt.MapClaims{"sub": "1", "role": "ADMIN"})); rec.Code != http.StatusOK {
        t.Fatalf("expected admin allowed, got %d", rec.Code)
    }
    if rec := serve(whoami, mw, "Bearer "+sign(t, jwt.MapClaims{"sub": "1", "role": " agent"})); rec.Code != http.StatusOK {
        t.Fatalf("expected case-insensitive match, got %d", rec.Code)
    }
    if rec := serve(whoami, mw, "Bearer "+sign(t, jwt.MapClaims{"sub": "1", "role": "CUSTOMER"})); rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403, got %d", rec.Code)
    }
    if rec := serve(whoami, mw, "Bearer "+sign(t, jwt.MapClaims{"sub": "1"})); rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403 without role, got %d", rec.Code)
    }
}

func newCtx(target, user string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, nil)
    req.Header.Set("X-Real-IP", "10.0.0.9")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/drafts/:id/pnr")
    if user != "" {
        c.Set(CtxUserID, user)
    }
    return c
}

func TestBuildRateKey(t *testing.T) {
    cfg := config.RateLimitConfig{Prefix: "desk:rl", KeyStrategy: "user_route"}

    a := buildRateKey(cfg, newCtx("/v1/drafts/a/pnr", "7"))
    b := buildRateKey(cfg, newCtx("/v1/drafts/b/pnr", "7"))
    if a != b {
        t.Fatalf("expected drafts of one user to share a bucket: %q vs %q", a, b)
    }
    if a != "desk:rl:user:7:route:POST /v1/drafts/:id/pnr" {
        t.Fatalf("unexpected key %q", a)
    }
    if k := buildRateKey(cfg, newCtx("/v1/drafts/a/pnr", "")); !strings.Contains(k, "user:guest") {
        t.Fatalf("expected guest fallback, got %q", k)
    }
    cfg.KeyStrategy = "ip"
    if k := buildRateKey(cfg, newCtx("/v1/drafts/a/pnr", "7")); k != "desk:rl:ip:10.0.0.9" {
        t.Fatalf("unexpected ip key %q", k)
    }
}

func TestRetryAfterSeconds(t *testing.T) {
    for ms, want := range map[int64]int{-5: 0, 0: 0, 1: 1, 1000: 1, 1001: 2, 5999: 6} {
        if got := retryAfterSeconds(ms); got != want {
            t.Fatalf("%dms: expected %d, got %d", ms, want, got)
        }
    }
}

func TestCacheKeyFrom(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "desk:cache", KeyStrategy: "user_route_query"}
    mk := func(q, user string) string {
        c := newCtx("/v1/submissions"+q, user)
        c.SetPath("/v1/submissions")
        return cacheKeyFrom(cfg, c)
    }
    if mk("?limit=5", "1") == mk("?limit=5", "2") {
        t.Fatalf("expected per-user keys")
    }
    if mk("?limit=5", "1") == mk("?limit=6", "1") {
        t.Fatalf("expected per-query keys")
    }
    if mk("?a=1&b=2", "1") != mk("?b=2&a=1", "1") {
        t.Fatalf("expected query order not to matter")
    }
    if !strings.HasPrefix(mk("", "1"), "desk:cache:") {
        t.Fatalf("expected prefix")
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
    if err != nil {
        t.Fatal(err)
    }
    status, got, body, ok := decodePayload(bs)
    if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"items":[]}` {
        t.Fatalf("unexpected decode: %d %v %q %v", status, got, body, ok)
    }
    if _, _, _, ok := decodePayload(bs[:5]); ok {
        t.Fatalf("expected short payload to be rejected")
    }
}

func TestCaptureWriterDropsOversizedBody(t *testing.T) {
    cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("def"))
    if !cw.truncated || cw.buf.Len() != 0 {
        t.Fatalf("expected truncated capture, got %q", cw.buf.String())
    }
}

func TestNilRedisPassesThrough(t *testing.T) {
    mw := []echo.MiddlewareFunc{
        NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil),
        NewRedisCache(config.CacheConfig{Enabled: true, TTL: time.Second, Methods: map[string]bool{"GET": true}}, nil),
    }
    ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
    for i := 0; i < 3; i++ {
        if rec := serve(ok, mw, ""); rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
            t.Fatalf("expected untouched 200, got %d %v", rec.Code, rec.Header())
        }
    }
}
