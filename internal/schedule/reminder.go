package schedule

import (
	"context"
	"log/slog"
	"time"
)

const publishTimeout = 1 * time.Minute

type (
	Publisher interface {
		SendReminder(ctx context.Context, chatID int64) error
	}

	// Reminder periodically pings each configured chat during the evening
	// window if its user has not solved today's puzzle yet.
	Reminder struct {
		chatIDs  []int64
		interval time.Duration
		hourFrom int
		hourTo   int
		loc      *time.Location

		publisher Publisher

		log *slog.Logger
	}
)

func NewReminder(chatIDs []int64, interval time.Duration, hourFrom, hourTo int, loc *time.Location, p Publisher, log *slog.Logger) *Reminder {
	return &Reminder{
		chatIDs:   chatIDs,
		interval:  interval,
		hourFrom:  hourFrom,
		hourTo:    hourTo,
		loc:       loc,
		publisher: p,
		log:       log,
	}
}

func (r *Reminder) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.interval):
			hour := time.Now().In(r.loc).Hour()
			if hour < r.hourFrom || hour > r.hourTo {
				continue
			}
		}

		for _, chatID := range r.chatIDs {
			ctx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := r.publisher.SendReminder(ctx, chatID); err != nil {
				r.log.Error("failed to send reminder", "error", err, "chat_id", chatID)
			}
			cancel()
		}
	}
}
