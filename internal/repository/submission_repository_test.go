package repository

import (
    "context"
    "errors"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/shopspring/decimal"

    "github.com/Simplextsd/grow-aura-engage/internal/model"
)

var submissionCols = []string{"id", "booking_id", "draft_id", "user_id", "customer_name", "currency",
    "grand_total", "balance_due", "open_url", "submitted_at", "created_at"}

func newMock(t *testing.T) (*SubmissionRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    t.Cleanup(func() {
        if err := mock.ExpectationsWereMet(); err != nil {
            t.Errorf("unmet expectations: %v", err)
        }
        db.Close()
    })
    return NewSubmissionRepo(db), mock
}

func TestSubmissionRepo_Insert(t *testing.T) {
    repo, mock := newMock(t)
    at := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_submissions")).
        WithArgs("42", "draft-1", "agent-1", "Ayesha Khan", "USD", "1500.5", "500.5", "http://b/api/bookings/download/42", at).
        WillReturnResult(sqlmock.NewResult(1, 1))

    err := repo.Insert(context.Background(), model.Submission{
        BookingID:    "42",
        DraftID:      "draft-1",
        UserID:       "agent-1",
        CustomerName: "Ayesha Khan",
        Currency:     model.CurrencyUSD,
        GrandTotal:   decimal.RequireFromString("1500.50"),
        BalanceDue:   decimal.RequireFromString("500.50"),
        OpenURL:      "http://b/api/bookings/download/42",
        SubmittedAt:  at,
    })
    if err != nil {
        t.Fatalf("expected no error, got %v", err)
    }
}

func TestSubmissionRepo_ListRecent(t *testing.T) {
    repo, mock := newMock(t)
    at := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

    mock.ExpectQuery(regexp.QuoteMeta("FROM booking_submissions ORDER BY submitted_at DESC, id DESC LIMIT ?")).
        WithArgs(20).
        WillReturnRows(sqlmock.NewRows(submissionCols).
            AddRow(2, "43", "draft-2", "agent-1", "Bilal", "CAD", "280.0000", "0.0000", "", at, at).
            AddRow(1, "42", "draft-1", "agent-1", "Ayesha", "USD", "100.0000", "-20.0000", "u", at, at))

    got, err := repo.ListRecent(context.Background(), 20)
    if err != nil {
        t.Fatalf("expected no error, got %v", err)
    }
    if len(got) != 2 {
        t.Fatalf("expected 2 rows, got %d", len(got))
    }
    if got[0].BookingID != "43" || got[0].Currency != model.CurrencyCAD || !got[0].GrandTotal.Equal(decimal.NewFromInt(280)) {
        t.Fatalf("unexpected first row %+v", got[0])
    }
    if !got[1].BalanceDue.Equal(decimal.NewFromInt(-20)) {
        t.Fatalf("expected negative balance preserved, got %s", got[1].BalanceDue)
    }
}

func TestSubmissionRepo_GetByBookingID(t *testing.T) {
    repo, mock := newMock(t)

    mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_id = ?")).
        WithArgs("missing").
        WillReturnRows(sqlmock.NewRows(submissionCols))

    if _, err := repo.GetByBookingID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestSubmissionRepo_GetByBookingIDFound(t *testing.T) {
    repo, mock := newMock(t)
    at := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

    mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_id = ? ORDER BY submitted_at DESC, id DESC LIMIT 1")).
        WithArgs("42").
        WillReturnRows(sqlmock.NewRows(submissionCols).
            AddRow(1, "42", "draft-1", "agent-1", "Ayesha", "USD", "100.0000", "0.0000", "u", at, at))

    s, err := repo.GetByBookingID(context.Background(), "42")
    if err != nil {
        t.Fatalf("expected no error, got %v", err)
    }
    if s.DraftID != "draft-1" || !s.GrandTotal.Equal(decimal.NewFromInt(100)) {
        t.Fatalf("unexpected row %+v", s)
    }
}

func TestSubmissionRepo_InsertWithoutBookingID(t *testing.T) {
    repo, mock := newMock(t)
    at := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_submissions")).
        WithArgs("", "draft-2", "agent-1", "Bilal", "CAD", "280", "0", "https://pay.example/s/x", at).
        WillReturnResult(sqlmock.NewResult(2, 1))

    err := repo.Insert(context.Background(), model.Submission{
        DraftID:      "draft-2",
        UserID:       "agent-1",
        CustomerName: "Bilal",
        Currency:     model.CurrencyCAD,
        GrandTotal:   decimal.NewFromInt(280),
        BalanceDue:   decimal.Zero,
        OpenURL:      "https://pay.example/s/x",
        SubmittedAt:  at,
    })
    if err != nil {
        t.Fatalf("expected no error, got %v", err)
    }
}
