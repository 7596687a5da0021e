// Package notify delivers reminder notifications in the background so
// request handling never waits on an outbound channel.
package notify

import (
	"context"
	"log/slog"

	"portal/internal/portal/service"
)

// Sender performs one delivery. Implementations exist per outbound channel;
// the demo build logs instead of sending.
type Sender interface {
	Deliver(ctx context.Context, reminder service.Reminder) error
}

// LogSender writes each reminder to the log. It stands in for a real email
// or portal-push integration.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Deliver(ctx context.Context, reminder service.Reminder) error {
	s.Logger.InfoContext(ctx, "reminder delivered",
		"deadline_id", reminder.DeadlineID,
		"client_id", reminder.ClientID,
		"channel", string(reminder.Channel),
		"recipients", len(reminder.Recipients),
	)
	return nil
}

// Dispatcher queues reminders and hands them to a Sender on a background
// goroutine. It implements service.Notifier.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
	inbox  chan service.Reminder
	done   chan struct{}
}

// NewDispatcher builds a dispatcher with the given queue depth and starts
// its delivery loop.
func NewDispatcher(sender Sender, logger *slog.Logger, depth int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		logger: logger,
		inbox:  make(chan service.Reminder, depth),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Send enqueues the reminder. A full queue drops the delivery with a warning
// rather than stalling the calling request.
func (d *Dispatcher) Send(ctx context.Context, reminder service.Reminder) error {
	select {
	case d.inbox <- reminder:
		return nil
	default:
		d.logger.WarnContext(ctx, "notification queue full, dropping reminder",
			"deadline_id", reminder.DeadlineID,
			"client_id", reminder.ClientID,
		)
		return nil
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for reminder := range d.inbox {
		// Deliveries outlive the originating request, so they carry a
		// fresh context.
		if err := d.sender.Deliver(context.Background(), reminder); err != nil {
			d.logger.Warn("reminder delivery failed",
				"deadline_id", reminder.DeadlineID,
				"error", err.Error(),
			)
		}
	}
}

// Close drains the queue and stops the delivery loop.
func (d *Dispatcher) Close() {
	close(d.inbox)
	<-d.done
}
