package telegram

import (
	"fmt"
	"log/slog"

	tb "gopkg.in/telebot.v3"
)

// Recover keeps a panicking handler from taking the whole poller down.
func Recover(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic in bot handler", "panic", r, "chat_id", c.Chat().ID)
				}
			}()
			return next(c)
		}
	}
}

// LogErrors reports handler failures; telebot swallows them otherwise.
func LogErrors(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			err := next(c)
			if err != nil {
				log.Error("failed to process bot command", "error", err, "chat_id", c.Chat().ID)
			}
			return err
		}
	}
}

// KnownChats drops updates from chats that have no user mapping, so the bot
// only ever talks to chats the game can resolve to a player.
func KnownChats(chatUsers map[int64]string) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			chatID := c.Chat().ID
			if _, ok := chatUsers[chatID]; !ok {
				return fmt.Errorf("chat %d has no mapped user", chatID)
			}

			return next(c)
		}
	}
}
