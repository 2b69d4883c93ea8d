package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplextsd/grow-aura-engage/internal/clock"
	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// Registry holds the open forms of the desk, keyed by draft ID.  Each form
// belongs to the user that opened it.
type Registry struct {
	api         Backend
	clock       clock.Clock
	rate        decimal.Decimal
	onSubmitted func(Receipt)

	mu    sync.Mutex
	forms map[string]*Form
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the clock used for idle tracking.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithExchangeRate sets the rate new drafts start with.
func WithExchangeRate(rate decimal.Decimal) Option {
	return func(r *Registry) { r.rate = EffectiveRate(rate) }
}

// WithOnSubmitted registers a callback run after every successful submit.
func WithOnSubmitted(fn func(Receipt)) Option {
	return func(r *Registry) { r.onSubmitted = fn }
}

// NewRegistry returns an empty registry whose forms use api.
func NewRegistry(api Backend, opts ...Option) *Registry {
	r := &Registry{
		api:   api,
		clock: clock.NewSystem(),
		rate:  decimal.RequireFromString("1.4"),
		forms: make(map[string]*Form),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates a new form with a blank draft for owner.
func (r *Registry) Open(owner string) *Form {
	id := uuid.NewString()
	f := newForm(id, owner, model.NewBookingDraft(r.rate), r.api, r.clock.Now, r.onSubmitted)
	r.mu.Lock()
	r.forms[id] = f
	r.mu.Unlock()
	return f
}

// Get returns the form id if it belongs to owner.
func (r *Registry) Get(id, owner string) (*Form, error) {
	r.mu.Lock()
	f, ok := r.forms[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrDraftNotFound
	}
	if f.owner != owner {
		return nil, ErrForbidden
	}
	return f, nil
}

// Close discards the form id.
func (r *Registry) Close(id, owner string) error {
	f, err := r.Get(id, owner)
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.forms, id)
	r.mu.Unlock()
	f.Close()
	return nil
}

// Sweep closes every form that has not changed for longer than idle and
// returns their IDs.  Forms waiting on the backend are left alone.
func (r *Registry) Sweep(idle time.Duration) []string {
	cutoff := r.clock.Now().Add(-idle)
	r.mu.Lock()
	var stale []*Form
	for id, f := range r.forms {
		if f.idleSince(cutoff) {
			stale = append(stale, f)
			delete(r.forms, id)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(stale))
	for _, f := range stale {
		f.Close()
		ids = append(ids, f.id)
	}
	return ids
}

// Len returns the number of open forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}
