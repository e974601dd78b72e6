package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Env string

// parseChatUsers parses a "chatID=userID,chatID=userID" mapping of Telegram
// chats to the opaque user ids the identity service issued for them.
func parseChatUsers(raw string) (map[int64]string, error) {
	if raw == "" {
		return nil, nil
	}

	pairs := strings.Split(raw, ",")
	res := make(map[int64]string, len(pairs))
	for _, pair := range pairs {
		chatIDStr, userID, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || userID == "" {
			return nil, fmt.Errorf("parse chat users: invalid pair %q", pair)
		}
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse chat users: invalid chat ID %q: %w", chatIDStr, err)
		}
		res[chatID] = userID
	}

	return res, nil
}
