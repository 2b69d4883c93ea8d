// Package service holds side effects that follow a successful submit.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
    "context"
    "encoding/json"
    "log"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/Simplextsd/grow-aura-engage/internal/booking"
    "github.com/Simplextsd/grow-aura-engage/internal/queue"
)

// Publisher sends booking.submitted events to the broker at URL.  A
// connection is dialled per event; submits are rare enough that pooling
// would only add reconnect handling.
type Publisher struct {
    URL     string
    Timeout time.Duration

    inflight sync.WaitGroup
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string) *Publisher {
    return &Publisher{URL: url, Timeout: 10 * time.Second}
}

// EventFromReceipt builds the audit event for an accepted submission.
func EventFromReceipt(rc booking.Receipt) queue.BookingSubmittedEvent {
    return queue.BookingSubmittedEvent{
        BookingID:    rc.BookingID,
        DraftID:      rc.DraftID,
        UserID:       rc.UserID,
        CustomerName: rc.Draft.CustomerName,
        Currency:     string(rc.Draft.Currency),
        GrandTotal:   rc.Draft.GrandTotal(),
        BalanceDue:   rc.Draft.BalanceDue(),
        OpenURL:      rc.OpenURL,
        SubmittedAt:  rc.SubmittedAt.UTC().Format(time.RFC3339),
    }
}

// OnSubmitted is the registry hook.  Publishing runs in its own goroutine;
// Wait blocks until every publish started here has finished.
func (p *Publisher) OnSubmitted(rc booking.Receipt) {
    ev := EventFromReceipt(rc)
    p.inflight.Add(1)
    go func() {
        defer p.inflight.Done()
        ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
        defer cancel()
        _ = p.PublishBookingSubmitted(ctx, ev)
    }()
}

// Wait blocks until pending publishes finish or ctx is done.
func (p *Publisher) Wait(ctx context.Context) error {
    done := make(chan struct{})
    go func() {
        p.inflight.Wait()
        close(done)
    }()
    select {
    case <-done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}

// PublishBookingSubmitted publishes event to the "booking.submitted" queue
// as a persistent message.  Any error is logged and returned.
func (p *Publisher) PublishBookingSubmitted(ctx context.Context, event queue.BookingSubmittedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        queue.BookingSubmittedQueue, // name
        true,                        // durable
        false,                       // autoDelete
        false,                       // exclusive
        false,                       // noWait
        nil,                         // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        MessageId:    event.DraftID,
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",                          // default exchange
        queue.BookingSubmittedQueue, // routing key = queue name
        false,                       // mandatory
        false,                       // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
