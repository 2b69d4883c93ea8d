package booking

import (
	"context"
	"sync"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
)

type fakeBackend struct {
	mu          sync.Mutex
	createCalls int
	pnrCalls    int
	lastCreate  backend.CreateBookingRequest
	lastToken   string
	lastPNR     string

	createRes backend.CreateBookingResult
	createErr error
	pnrRes    backend.PNRResult
	pnrErr    error

	// When entered is non-nil each call signals it and then waits on release.
	entered chan struct{}
	release chan struct{}
}

func (b *fakeBackend) CreateBooking(ctx context.Context, token string, req backend.CreateBookingRequest) (backend.CreateBookingResult, error) {
	b.mu.Lock()
	b.createCalls++
	b.lastCreate = req
	b.lastToken = token
	res, err := b.createRes, b.createErr
	b.mu.Unlock()
	b.wait()
	return res, err
}

func (b *fakeBackend) FetchPNR(ctx context.Context, token, pnr string) (backend.PNRResult, error) {
	b.mu.Lock()
	b.pnrCalls++
	b.lastPNR = pnr
	b.lastToken = token
	res, err := b.pnrRes, b.pnrErr
	b.mu.Unlock()
	b.wait()
	return res, err
}

func (b *fakeBackend) DownloadURL(id backend.ID) string {
	return "http://backend.test/api/bookings/download/" + string(id)
}

func (b *fakeBackend) wait() {
	if b.entered == nil {
		return
	}
	b.entered <- struct{}{}
	<-b.release
}

func (b *fakeBackend) calls() (create, pnr int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createCalls, b.pnrCalls
}
