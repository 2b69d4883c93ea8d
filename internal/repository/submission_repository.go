package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/Simplextsd/grow-aura-engage/internal/model"
)

// SubmissionRepo provides data access to the booking_submissions table.
// All timestamps are stored and returned in UTC.
type SubmissionRepo struct {
    db *sql.DB
}

// NewSubmissionRepo returns a new SubmissionRepo bound to the provided database.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

// Insert stores s.  Rows are keyed by draft_id; inserting one that already
// exists is a no-op, so replayed events are harmless.
func (r *SubmissionRepo) Insert(ctx context.Context, s model.Submission) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO booking_submissions
            (booking_id, draft_id, user_id, customer_name, currency, grand_total, balance_due, open_url, submitted_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON DUPLICATE KEY UPDATE id = id`,
        s.BookingID, s.DraftID, s.UserID, s.CustomerName, string(s.Currency),
        s.GrandTotal.String(), s.BalanceDue.String(), s.OpenURL, s.SubmittedAt.UTC(),
    )
    return err
}

const submissionColumns = `id, booking_id, draft_id, user_id, customer_name, currency, grand_total, balance_due, open_url, submitted_at, created_at`

// ListRecent returns up to limit submissions, newest first.
func (r *SubmissionRepo) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+submissionColumns+` FROM booking_submissions ORDER BY submitted_at DESC, id DESC LIMIT ?`,
        limit,
    )
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Submission, 0, limit)
    for rows.Next() {
        s, err := scanSubmission(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// GetByBookingID returns the latest submission for a backend booking ID or
// ErrNotFound.
func (r *SubmissionRepo) GetByBookingID(ctx context.Context, bookingID string) (model.Submission, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+submissionColumns+` FROM booking_submissions WHERE booking_id = ? ORDER BY submitted_at DESC, id DESC LIMIT 1`,
        bookingID,
    )
    s, err := scanSubmission(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Submission{}, ErrNotFound
    }
    return s, err
}

type scanner interface {
    Scan(dest ...any) error
}

func scanSubmission(sc scanner) (model.Submission, error) {
    var (
        s         model.Submission
        currency  string
        submitted time.Time
        created   time.Time
    )
    if err := sc.Scan(&s.ID, &s.BookingID, &s.DraftID, &s.UserID, &s.CustomerName, &currency,
        &s.GrandTotal, &s.BalanceDue, &s.OpenURL, &submitted, &created); err != nil {
        return model.Submission{}, err
    }
    s.Currency = model.Currency(currency)
    s.SubmittedAt = submitted.UTC()
    s.CreatedAt = created.UTC()
    return s, nil
}
