package telegram

import (
	"fmt"
	"log/slog"
	"refugebot/app/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
)

const pollTimeoutSeconds = 30

type Client struct {
	cfg *config.Config
	bot *tgbotapi.BotAPI
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Authorized on Telegram", "username", bot.Self.UserName)

	return &Client{
		cfg: cfg,
		bot: bot,
	}, nil
}

// Updates starts long polling and returns the inbound update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds

	return c.bot.GetUpdatesChan(updateConfig)
}

func (c *Client) Send(msg tgbotapi.Chattable) error {
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	c.bot.StopReceivingUpdates()

	return nil
}
