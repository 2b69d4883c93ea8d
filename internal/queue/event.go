// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
    "fmt"
    "time"

    "github.com/shopspring/decimal"

    "github.com/Simplextsd/grow-aura-engage/internal/model"
)

// BookingSubmittedQueue is the durable queue carrying BookingSubmittedEvent.
const BookingSubmittedQueue = "booking.submitted"

// BookingSubmittedEvent is published once the backend has accepted a draft.
// Money travels as decimal strings so no precision is lost in transit.
type BookingSubmittedEvent struct {
    BookingID    string          `json:"booking_id"`
    DraftID      string          `json:"draft_id"`
    UserID       string          `json:"user_id"`
    CustomerName string          `json:"customer_name"`
    Currency     string          `json:"currency"`
    GrandTotal   decimal.Decimal `json:"grand_total"`
    BalanceDue   decimal.Decimal `json:"balance_due"`
    OpenURL      string          `json:"open_url"`
    SubmittedAt  string          `json:"submitted_at"`
}

// Submission converts the event into the audit row stored by the consumer.
// BookingID may be empty when the backend answered with a payment link only;
// DraftID is always set and identifies the row.
func (ev BookingSubmittedEvent) Submission() (model.Submission, error) {
    if ev.DraftID == "" {
        return model.Submission{}, fmt.Errorf("missing draft_id")
    }
    at, err := time.Parse(time.RFC3339, ev.SubmittedAt)
    if err != nil {
        return model.Submission{}, fmt.Errorf("submitted_at: %w", err)
    }
    return model.Submission{
        BookingID:    ev.BookingID,
        DraftID:      ev.DraftID,
        UserID:       ev.UserID,
        CustomerName: ev.CustomerName,
        Currency:     model.Currency(ev.Currency),
        GrandTotal:   ev.GrandTotal,
        BalanceDue:   ev.BalanceDue,
        OpenURL:      ev.OpenURL,
        SubmittedAt:  at.UTC(),
    }, nil
}
