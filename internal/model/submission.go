package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Submission is the audit record of a booking accepted by the backend.
// One row is written per booking.submitted event.
//
// Fields:
//  ID           – booking_submissions.id
//  BookingID    – identifier assigned by the backend (unique).
//  DraftID      – desk session the booking was entered in.
//  UserID       – JWT subject of the agent who submitted.
//  CustomerName – customer on the booking.
//  Currency     – selling currency.
//  GrandTotal   – total in Currency.
//  BalanceDue   – outstanding amount at submit time.
//  OpenURL      – payment link or download URL handed to the browser.
//  SubmittedAt  – when the backend accepted the booking.
type Submission struct {
    ID           uint64          `json:"id"`
    BookingID    string          `json:"booking_id"`
    DraftID      string          `json:"draft_id"`
    UserID       string          `json:"user_id"`
    CustomerName string          `json:"customer_name"`
    Currency     Currency        `json:"currency"`
    GrandTotal   decimal.Decimal `json:"grand_total"`
    BalanceDue   decimal.Decimal `json:"balance_due"`
    OpenURL      string          `json:"open_url"`
    SubmittedAt  time.Time       `json:"submitted_at"`
    CreatedAt    time.Time       `json:"created_at"`
}
