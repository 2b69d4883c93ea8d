package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/Simplextsd/grow-aura-engage/internal/model"
    "github.com/Simplextsd/grow-aura-engage/internal/repository"
)

const (
    defaultSubmissionLimit = 20
    maxSubmissionLimit     = 100
)

// SubmissionReader reads the audit trail.  *repository.SubmissionRepo
// satisfies it.
type SubmissionReader interface {
    ListRecent(ctx context.Context, limit int) ([]model.Submission, error)
    GetByBookingID(ctx context.Context, bookingID string) (model.Submission, error)
}

// SubmissionHandler serves the audit trail written by the booking consumer.
type SubmissionHandler struct {
    Repo SubmissionReader
}

// NewSubmissionHandler constructs a SubmissionHandler and panics if repo is nil.
func NewSubmissionHandler(repo SubmissionReader) *SubmissionHandler {
    if repo == nil {
        panic("nil repository passed to NewSubmissionHandler")
    }
    return &SubmissionHandler{Repo: repo}
}

// List handles GET /v1/submissions?limit=N.  limit defaults to 20 and is
// capped at 100.
func (h *SubmissionHandler) List(c echo.Context) error {
    limit := defaultSubmissionLimit
    if s := c.QueryParam("limit"); s != "" {
        n, err := strconv.Atoi(s)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer", "field": "limit"})
        }
        limit = min(n, maxSubmissionLimit)
    }

    items, err := h.Repo.ListRecent(c.Request().Context(), limit)
    if err != nil {
        c.Logger().Errorf("submissions: list: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "limit": limit})
}

// Get handles GET /v1/submissions/:booking_id.
func (h *SubmissionHandler) Get(c echo.Context) error {
    s, err := h.Repo.GetByBookingID(c.Request().Context(), c.Param("booking_id"))
    if errors.Is(err, repository.ErrNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
    }
    if err != nil {
        c.Logger().Errorf("submissions: get: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, s)
}
