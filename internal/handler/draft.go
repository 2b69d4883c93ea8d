package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/Simplextsd/grow-aura-engage/internal/booking"
    "github.com/Simplextsd/grow-aura-engage/internal/middleware"
    "github.com/Simplextsd/grow-aura-engage/internal/model"
)

// DraftHandler exposes the booking desk.  Every draft belongs to the user
// that opened it; all methods assume JWTAuth has already run.
type DraftHandler struct {
    Drafts *booking.Registry
}

// NewDraftHandler constructs a DraftHandler and panics if drafts is nil.
func NewDraftHandler(drafts *booking.Registry) *DraftHandler {
    if drafts == nil {
        panic("nil registry passed to NewDraftHandler")
    }
    return &DraftHandler{Drafts: drafts}
}

type headerRequest struct {
    CustomerName       *string              `json:"customer_name" validate:"omitempty,max=255"`
    DueDate            *string              `json:"due_date"`
    Status             *string              `json:"status" validate:"omitempty,oneof=sent paid"`
    PaymentMethod      *string              `json:"payment_method" validate:"omitempty,max=64"`
    GenerateStripeLink *bool                `json:"generate_stripe_link"`
    Currency           *string              `json:"currency" validate:"omitempty,oneof=USD CAD"`
    ExchangeRate       *decimal.Decimal     `json:"exchange_rate"`
    SellingPrice       *decimal.Decimal     `json:"selling_price"`
    SellingPriceUSD    *decimal.Decimal     `json:"total_selling_usd"`
    SellingPriceCAD    *decimal.Decimal     `json:"total_selling_cad"`
    PaymentReceived    *decimal.Decimal     `json:"payment_received"`
    OtherServices      *model.OtherServices `json:"other_services"`
    Notes              *string              `json:"notes" validate:"omitempty,max=4000"`
}

func (r headerRequest) patch() booking.HeaderPatch {
    p := booking.HeaderPatch{
        CustomerName:       r.CustomerName,
        DueDate:            r.DueDate,
        PaymentMethod:      r.PaymentMethod,
        GenerateStripeLink: r.GenerateStripeLink,
        ExchangeRate:       r.ExchangeRate,
        SellingPrice:       r.SellingPrice,
        SellingPriceUSD:    r.SellingPriceUSD,
        SellingPriceCAD:    r.SellingPriceCAD,
        PaymentReceived:    r.PaymentReceived,
        OtherServices:      r.OtherServices,
        Notes:              r.Notes,
    }
    if r.Status != nil {
        s := model.InvoiceStatus(*r.Status)
        p.Status = &s
    }
    if r.Currency != nil {
        c := model.Currency(*r.Currency)
        p.Currency = &c
    }
    return p
}

type flightRefRequest struct {
    FlightBookingRef string `json:"flight_booking_ref" validate:"max=64"`
}

type rowFieldRequest struct {
    Field string `json:"field" validate:"required"`
    Value string `json:"value" validate:"max=1024"`
}

type submitResponse struct {
    BookingID string       `json:"booking_id"`
    OpenURL   string       `json:"open_url,omitempty"`
    Draft     booking.View `json:"draft"`
}

// Open handles POST /v1/drafts.
func (h *DraftHandler) Open(c echo.Context) error {
    f := h.Drafts.Open(middleware.UserID(c))
    return c.JSON(http.StatusCreated, f.View())
}

// Get handles GET /v1/drafts/:id.
func (h *DraftHandler) Get(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// UpdateHeader handles PATCH /v1/drafts/:id.  Only the fields present in
// the body change.  selling_price sets the price of the selected currency
// and the other one is derived from the exchange rate.
func (h *DraftHandler) UpdateHeader(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    var req headerRequest
    if err := bindAndValidate(c, &req); err != nil {
        return err
    }
    if err := f.ApplyHeader(req.patch()); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// SetFlightBookingRef handles PUT /v1/drafts/:id/flight-ref.
func (h *DraftHandler) SetFlightBookingRef(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    var req flightRefRequest
    if err := bindAndValidate(c, &req); err != nil {
        return err
    }
    if err := f.SetFlightBookingRef(req.FlightBookingRef); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// AddRow handles POST /v1/drafts/:id/rows/:kind.
func (h *DraftHandler) AddRow(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    if err := f.AddRow(model.RowKind(c.Param("kind"))); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusCreated, f.View())
}

// UpdateRow handles PATCH /v1/drafts/:id/rows/:kind/:index with a body of
// {"field": ..., "value": ...}.
func (h *DraftHandler) UpdateRow(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    index, err := rowIndex(c)
    if err != nil {
        return err
    }
    var req rowFieldRequest
    if err := bindAndValidate(c, &req); err != nil {
        return err
    }
    edit, err := booking.NewRowEdit(model.RowKind(c.Param("kind")), req.Field, req.Value)
    if err != nil {
        return draftError(c, err)
    }
    if err := f.UpdateField(index, edit); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// DeleteRow handles DELETE /v1/drafts/:id/rows/:kind/:index.
func (h *DraftHandler) DeleteRow(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    index, err := rowIndex(c)
    if err != nil {
        return err
    }
    if err := f.DeleteRow(model.RowKind(c.Param("kind")), index); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// FetchPNR handles POST /v1/drafts/:id/pnr.  The lookup uses the draft's
// flight booking ref and the caller's own token.
func (h *DraftHandler) FetchPNR(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    if err := f.FetchPNR(c.Request().Context(), middleware.BearerToken(c)); err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, f.View())
}

// Submit handles POST /v1/drafts/:id/submit.  A successful submit locks the
// draft; open_url is the page the browser should open next.
func (h *DraftHandler) Submit(c echo.Context) error {
    f, err := h.form(c)
    if err != nil {
        return draftError(c, err)
    }
    rc, err := f.Submit(c.Request().Context(), middleware.BearerToken(c))
    if err != nil {
        return draftError(c, err)
    }
    return c.JSON(http.StatusOK, submitResponse{BookingID: rc.BookingID, OpenURL: rc.OpenURL, Draft: f.View()})
}

// Close handles DELETE /v1/drafts/:id.
func (h *DraftHandler) Close(c echo.Context) error {
    if err := h.Drafts.Close(c.Param("id"), middleware.UserID(c)); err != nil {
        return draftError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

func (h *DraftHandler) form(c echo.Context) (*booking.Form, error) {
    return h.Drafts.Get(c.Param("id"), middleware.UserID(c))
}

func rowIndex(c echo.Context) (int, error) {
    i, err := strconv.Atoi(c.Param("index"))
    if err != nil {
        return 0, badRequest("invalid row index", "index")
    }
    return i, nil
}

// bindAndValidate decodes the body into dst and runs the validator.  The
// returned error is an *echo.HTTPError whose JSON body matches the one
// draftError writes for validation failures.
func bindAndValidate(c echo.Context, dst interface{}) error {
    if err := c.Bind(dst); err != nil {
        return badRequest("invalid request body", "")
    }
    if err := c.Validate(dst); err != nil {
        if field, msg, ok := firstInvalidField(err); ok {
            return badRequest(msg, field)
        }
        return badRequest("invalid request body", "")
    }
    return nil
}

func badRequest(msg, field string) *echo.HTTPError {
    body := echo.Map{"error": msg}
    if field != "" {
        body["field"] = field
    }
    return echo.NewHTTPError(http.StatusBadRequest, body)
}

// draftError writes the response for a desk error.
func draftError(c echo.Context, err error) error {
    var (
        ve *booking.ValidationError
        rr *booking.RemoteRejection
        tf *booking.TransportFailure
    )
    switch {
    case errors.As(err, &ve):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
    case errors.Is(err, booking.ErrLocked),
        errors.Is(err, booking.ErrSubmitting),
        errors.Is(err, booking.ErrBusy):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.As(err, &rr):
        return c.JSON(http.StatusBadGateway, echo.Map{"error": rr.Message, "upstream_status": rr.Status})
    case errors.As(err, &tf):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": tf.Message})
    case errors.Is(err, booking.ErrDraftNotFound), errors.Is(err, booking.ErrClosed):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
    case errors.Is(err, booking.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, booking.ErrRowIndex),
        errors.Is(err, booking.ErrUnknownRowKind),
        errors.Is(err, booking.ErrUnknownField):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    c.Logger().Errorf("drafts: unexpected error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
