package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/Simplextsd/grow-aura-engage/internal/model"
)

// SubmissionWriter persists audit rows.  *repository.SubmissionRepo
// satisfies it.
type SubmissionWriter interface {
    Insert(ctx context.Context, s model.Submission) error
}

const maxBackoff = 30 * time.Second

// StartSubmissionConsumer connects to the broker at url, declares the
// booking.submitted queue (durable) and writes every event through w.  It
// reconnects with exponential backoff and only returns once ctx is done.
// Messages that cannot be decoded or stored are rejected without requeue so
// a poison message never blocks the queue.
func StartSubmissionConsumer(ctx context.Context, url string, w SubmissionWriter) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < maxBackoff {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, w)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, w SubmissionWriter) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(BookingSubmittedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(BookingSubmittedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(ctx, w, d.Body); err != nil {
                log.Printf("booking-consumer: handle message failed: %v", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(ctx context.Context, w SubmissionWriter, body []byte) error {
    var ev BookingSubmittedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    s, err := ev.Submission()
    if err != nil {
        return fmt.Errorf("invalid event: %w", err)
    }

    ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := w.Insert(ctx, s); err != nil {
        return fmt.Errorf("insert submission %s: %w", s.DraftID, err)
    }
    log.Printf("booking-consumer: recorded booking_id=%s draft_id=%s user_id=%s total=%s %s",
        s.BookingID, s.DraftID, s.UserID, s.GrandTotal.StringFixed(2), s.Currency)
    return nil
}
