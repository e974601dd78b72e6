package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type (
	ReminderSchedule struct {
		CheckInterval time.Duration `default:"30m"`
		HourFrom      int           `default:"18"`
		HourTo        int           `default:"22"`
		Location      string        `default:"UTC"`
	}

	Bot struct {
		Dev           bool   `default:"false"`
		TelegramToken string `envconfig:"TELEGRAM_TOKEN" default:""`
		// ChatUsers maps Telegram chat IDs to the opaque user ids the game
		// stores state under, e.g. "12345=user-a,67890=user-b".
		ChatUsers    map[int64]string `ignored:"true"`
		ChatUsersRaw string           `envconfig:"CHAT_USERS" default:""`
		DBURL        string           `envconfig:"DB_URL" default:""`
		Schedule     ReminderSchedule
	}
)

func (s ReminderSchedule) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func (s ReminderSchedule) MustTimeLocation() *time.Location {
	loc, err := s.TimeLocation()
	if err != nil {
		panic(fmt.Sprintf("failed to load location %s: %v", s.Location, err))
	}
	return loc
}

func NewBot(ctx context.Context) (*Bot, error) {
	res := &Bot{}
	if err := envconfig.Process("BOT", res); err != nil {
		return nil, fmt.Errorf("parse bot environment: %w", err)
	}

	if !res.Dev {
		if err := setBotProdConfig(ctx, res); err != nil {
			return nil, fmt.Errorf("set bot prod config: %w", err)
		}
	}

	chatUsers, err := parseChatUsers(res.ChatUsersRaw)
	if err != nil {
		return nil, err
	}
	res.ChatUsers = chatUsers

	return validateBot(res)
}

func validateBot(conf *Bot) (*Bot, error) {
	errs := make([]string, 0, 10) //nolint:mnd // 10 is a reasonable default value
	if conf.TelegramToken == "" {
		errs = append(errs, "telegram token is required")
	}
	if len(conf.ChatUsers) == 0 {
		errs = append(errs, "chat users mapping is required")
	}
	if conf.DBURL == "" {
		errs = append(errs, "db url is required")
	}
	if conf.Schedule.CheckInterval == 0 {
		errs = append(errs, "check interval is required")
	}
	if conf.Schedule.HourFrom < 0 || conf.Schedule.HourFrom > 23 {
		errs = append(errs, fmt.Sprintf("hour from %d must be in range 0-23", conf.Schedule.HourFrom))
	}
	if conf.Schedule.HourTo < 0 || conf.Schedule.HourTo > 23 {
		errs = append(errs, fmt.Sprintf("hour to %d must be in range 0-23", conf.Schedule.HourTo))
	}
	if conf.Schedule.HourFrom >= conf.Schedule.HourTo {
		errs = append(errs, fmt.Sprintf("hour from %d must be less than hour to %d", conf.Schedule.HourFrom, conf.Schedule.HourTo))
	}
	if _, err := conf.Schedule.TimeLocation(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone: %s", err))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
	}

	return conf, nil
}

func setBotProdConfig(ctx context.Context, target *Bot) error {
	parameters, err := FetchAWSParams(ctx,
		"/modle/prod/telegram-token",
		"/modle/prod/chat-users",
		"/modle/prod/db-url",
	)
	if err != nil {
		return fmt.Errorf("get parameters: %w", err)
	}

	for name, value := range parameters {
		switch name {
		case "/modle/prod/telegram-token":
			target.TelegramToken = value
		case "/modle/prod/chat-users":
			target.ChatUsersRaw = value
		case "/modle/prod/db-url":
			target.DBURL = value
		}
	}

	return nil
}
