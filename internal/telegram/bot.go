package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/modle-app/modle/internal/game"
)

const (
	commandStart  = "/start"
	commandStatus = "/status"

	somethingWentWrongMsg = "something went wrong"

	processTimeout = 10 * time.Second
)

type Bot struct {
	bot       *tb.Bot
	svc       *game.Service
	chatUsers map[int64]string

	middlewares []tb.MiddlewareFunc

	log *slog.Logger
}

func NewBot(token string, svc *game.Service, chatUsers map[int64]string, log *slog.Logger, middlewares ...tb.MiddlewareFunc) (*Bot, error) {
	b, err := tb.NewBot(tb.Settings{
		Token: token,
		Poller: &tb.LongPoller{
			Timeout: 1 * time.Minute,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Bot{
		bot:         b,
		svc:         svc,
		chatUsers:   chatUsers,
		middlewares: middlewares,
		log:         log,
	}, nil
}

func (b *Bot) Start() {
	b.bot.Handle(commandStart, b.HandleStart, b.middlewares...)
	b.bot.Handle(commandStatus, b.HandleStatus, b.middlewares...)

	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) HandleStart(m tb.Context) error {
	return m.Reply("Hello, I'm the Modle reminder bot. I'll ping you in the evening if you haven't solved today's puzzle yet. Use /status to check your streak.")
}

func (b *Bot) HandleStatus(m tb.Context) error {
	ctx, cancel := processCtx()
	defer cancel()

	userID, ok := b.chatUsers[m.Chat().ID]
	if !ok {
		return m.Reply("I don't know who you are, sorry")
	}

	status, err := b.svc.GlobalStatus(ctx, userID)
	if err != nil {
		b.log.Error("failed to get global status", "error", err, "chat_id", m.Chat().ID)
		return m.Reply(somethingWentWrongMsg)
	}

	if status.CompletedToday {
		return m.Reply(fmt.Sprintf("You already solved today's puzzle. Streak: %d 🔥", status.Streak))
	}

	return m.Reply(fmt.Sprintf("Today's puzzle is still waiting for you. Streak: %d", status.Streak))
}

// SendReminder pings the chat if its user has not solved today's puzzle yet.
func (b *Bot) SendReminder(ctx context.Context, chatID int64) error {
	userID, ok := b.chatUsers[chatID]
	if !ok {
		return fmt.Errorf("no user mapped to chat %d", chatID)
	}

	status, err := b.svc.GlobalStatus(ctx, userID)
	if err != nil {
		return fmt.Errorf("get global status: %w", err)
	}

	if status.CompletedToday {
		b.log.Debug("puzzle already solved today", "chat_id", chatID)
		return nil
	}

	msg := "You haven't solved today's puzzle yet. Don't lose your streak!"
	if status.Streak > 0 {
		msg = fmt.Sprintf("You haven't solved today's puzzle yet. Don't lose your %d-day streak!", status.Streak)
	}

	_, err = b.bot.Send(tb.ChatID(chatID), msg)
	return err
}

func processCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), processTimeout)
}
