package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/Simplextsd/grow-aura-engage/internal/handler"    // handlers for drafts, submissions and health
	"github.com/Simplextsd/grow-aura-engage/internal/middleware" // JWT authentication, roles, rate limiting and caching
)

// Roles allowed to use the desk.
var deskRoles = []string{"AGENT", "ADMIN"}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, open func() int) {
	e.GET("/healthz", handler.Health(open))
}

// Desk bundles what RegisterDesk needs.  PNRLimit and SubmissionCache may be
// nil, in which case the routes are served without them.
type Desk struct {
	Drafts          *handler.DraftHandler
	Submissions     *handler.SubmissionHandler
	JWTSecret       string
	PNRLimit        echo.MiddlewareFunc
	SubmissionCache echo.MiddlewareFunc
}

// RegisterDesk registers the draft session API and the submission audit
// listing under /v1.  Every route needs a valid access token carrying one of
// the desk roles.
func RegisterDesk(e *echo.Echo, d Desk) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(deskRoles...),
	)

	h := d.Drafts
	g.POST("/drafts", h.Open)
	g.GET("/drafts/:id", h.Get)
	g.PATCH("/drafts/:id", h.UpdateHeader)
	g.DELETE("/drafts/:id", h.Close)
	g.PUT("/drafts/:id/flight-ref", h.SetFlightBookingRef)
	g.POST("/drafts/:id/rows/:kind", h.AddRow)
	g.PATCH("/drafts/:id/rows/:kind/:index", h.UpdateRow)
	g.DELETE("/drafts/:id/rows/:kind/:index", h.DeleteRow)
	g.POST("/drafts/:id/pnr", h.FetchPNR, optional(d.PNRLimit)...)
	g.POST("/drafts/:id/submit", h.Submit)

	if d.Submissions != nil {
		g.GET("/submissions", d.Submissions.List, optional(d.SubmissionCache)...)
		g.GET("/submissions/:booking_id", d.Submissions.Get)
	}
}

func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
