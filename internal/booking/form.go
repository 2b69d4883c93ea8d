// Package booking implements the booking entry workflow: a draft with
// derived currency totals and editable row collections that moves from
// editable to submitting to locked.
package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// Backend is the part of the REST backend a Form talks to.
type Backend interface {
	CreateBooking(ctx context.Context, token string, req backend.CreateBookingRequest) (backend.CreateBookingResult, error)
	FetchPNR(ctx context.Context, token, pnr string) (backend.PNRResult, error)
	DownloadURL(id backend.ID) string
}

// State is the lifecycle state of a Form.
type State int

const (
	StateEditable State = iota
	StateSubmitting
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateLocked:
		return "locked"
	}
	return "editable"
}

// Receipt describes an accepted submission.  OpenURL is the payment link
// when the backend issued one, otherwise the download URL of the booking.
type Receipt struct {
	DraftID     string
	UserID      string
	BookingID   string
	OpenURL     string
	Draft       model.BookingDraft
	SubmittedAt time.Time
}

// View is a read-only snapshot of a Form.
type View struct {
	ID          string             `json:"id"`
	State       string             `json:"state"`
	Draft       model.BookingDraft `json:"draft"`
	GrandTotal  decimal.Decimal    `json:"grand_total"`
	BalanceDue  decimal.Decimal    `json:"balance_due"`
	FetchingPNR bool               `json:"fetching_pnr"`
}

// Form is one open booking entry session.  All methods are safe for
// concurrent use.  Network calls run outside the lock; their results are
// applied atomically when they return, or dropped if the form was closed
// in the meantime.
type Form struct {
	id          string
	owner       string
	api         Backend
	now         func() time.Time
	onSubmitted func(Receipt)

	mu       sync.Mutex
	draft    model.BookingDraft
	state    State
	fetching bool
	closed   bool
	touched  time.Time
}

func newForm(id, owner string, draft model.BookingDraft, api Backend, now func() time.Time, onSubmitted func(Receipt)) *Form {
	return &Form{
		id:          id,
		owner:       owner,
		api:         api,
		now:         now,
		onSubmitted: onSubmitted,
		draft:       Reconcile(draft),
		touched:     now(),
	}
}

func (f *Form) ID() string    { return f.id }
func (f *Form) Owner() string { return f.owner }

// View returns a snapshot that shares no memory with the form.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{
		ID:          f.id,
		State:       f.state.String(),
		Draft:       f.draft.Clone(),
		GrandTotal:  f.draft.GrandTotal(),
		BalanceDue:  f.draft.BalanceDue(),
		FetchingPNR: f.fetching,
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ApplyHeader validates and applies a header patch, then reconciles.
func (f *Form) ApplyHeader(p HeaderPatch) error {
	return f.mutate(p.apply)
}

// SetFlightBookingRef updates the header flight ref and back-fills every
// flight row whose ref is blank.
func (f *Form) SetFlightBookingRef(v string) error {
	return f.mutate(func(d *model.BookingDraft) error {
		setHeaderFlightRef(d, v)
		return nil
	})
}

// AddRow appends a blank row to the kind collection.
func (f *Form) AddRow(kind model.RowKind) error {
	return f.mutate(func(d *model.BookingDraft) error { return addRow(d, kind) })
}

// UpdateField applies e to the row at index of e's collection.
func (f *Form) UpdateField(index int, e RowEdit) error {
	return f.mutate(func(d *model.BookingDraft) error { return e.apply(d, index) })
}

// SetFlightRef sets one flight row's ref directly.  The row then keeps it
// across later header ref changes.
func (f *Form) SetFlightRef(index int, v string) error {
	return f.UpdateField(index, FlightEdit{Field: model.FlightRef, Value: v})
}

// DeleteRow removes the row at index from the kind collection.
func (f *Form) DeleteRow(kind model.RowKind, index int) error {
	return f.mutate(func(d *model.BookingDraft) error { return deleteRow(d, kind, index) })
}

// FetchPNR looks up the header flight ref and replaces the passenger and
// flight rows with the result.  Only one lookup runs at a time.  The
// request is not cancelled with ctx; it runs to completion.
func (f *Form) FetchPNR(ctx context.Context, token string) error {
	f.mu.Lock()
	if err := f.checkMutable(false); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.fetching {
		f.mu.Unlock()
		return ErrBusy
	}
	pnr := strings.TrimSpace(f.draft.FlightBookingRef)
	if pnr == "" {
		f.mu.Unlock()
		return &ValidationError{Field: "flight_booking_ref", Message: "Enter a booking ref / PNR first"}
	}
	f.fetching = true
	f.mu.Unlock()

	res, err := f.api.FetchPNR(context.WithoutCancel(ctx), token, pnr)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetching = false
	if f.closed {
		return ErrClosed
	}
	if err != nil {
		return remoteError(err, msgPNRFailed)
	}
	if err := f.checkMutable(true); err != nil {
		return err
	}
	next := f.draft.Clone()
	mergePNR(&next, res, pnr)
	f.draft = Reconcile(next)
	f.touched = f.now()
	return nil
}

// Submit sends the draft to the backend once.  On success the form locks,
// the receipt is passed to the success callback and returned.  On failure
// the form is editable again and the draft is exactly as before.
func (f *Form) Submit(ctx context.Context, token string) (Receipt, error) {
	f.mu.Lock()
	if err := f.checkMutable(false); err != nil {
		f.mu.Unlock()
		return Receipt{}, err
	}
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return Receipt{}, ErrBusy
	}
	if strings.TrimSpace(f.draft.CustomerName) == "" {
		f.mu.Unlock()
		return Receipt{}, &ValidationError{Field: "customer_name", Message: "Please enter Customer Name first!"}
	}
	req, err := BuildCreateRequest(f.draft)
	if err != nil {
		f.mu.Unlock()
		return Receipt{}, err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	res, err := f.api.CreateBooking(context.WithoutCancel(ctx), token, req)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Receipt{}, ErrClosed
	}
	if err != nil {
		f.state = StateEditable
		f.mu.Unlock()
		return Receipt{}, remoteError(err, msgSubmitFailed)
	}
	f.state = StateLocked
	f.draft.Locked = true
	f.draft.BookingID = string(res.ID)
	f.touched = f.now()

	rc := Receipt{
		DraftID:     f.id,
		UserID:      f.owner,
		BookingID:   string(res.ID),
		Draft:       f.draft.Clone(),
		SubmittedAt: f.touched,
	}
	switch {
	case res.StripeURL != "":
		rc.OpenURL = res.StripeURL
	case res.ID != "":
		rc.OpenURL = f.api.DownloadURL(res.ID)
	}
	cb := f.onSubmitted
	f.mu.Unlock()

	if cb != nil {
		cb(rc)
	}
	return rc, nil
}

// Close discards the form.  Results of requests still in flight are dropped.
func (f *Form) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// idleSince reports whether the form was last changed before cutoff.  A
// form with a submit or PNR lookup in flight is never idle.
func (f *Form) idleSince(cutoff time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting || f.fetching {
		return false
	}
	return f.touched.Before(cutoff)
}

// mutate applies fn to a copy of the draft and keeps the copy only if fn
// succeeds.  Caller must not hold f.mu.
func (f *Form) mutate(fn func(d *model.BookingDraft) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkMutable(true); err != nil {
		return err
	}
	next := f.draft.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	f.draft = Reconcile(next)
	f.touched = f.now()
	return nil
}

// checkMutable reports why the draft cannot change.  While a submission is
// in flight edits are refused when strict is set.  Caller holds f.mu.
func (f *Form) checkMutable(strict bool) error {
	switch {
	case f.closed:
		return ErrClosed
	case f.state == StateLocked:
		return ErrLocked
	case strict && f.state == StateSubmitting:
		return ErrSubmitting
	}
	return nil
}
