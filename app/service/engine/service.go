package engine

import (
	"context"
	"log/slog"
	"time"

	"refugebot/app/client/telegram"
	"refugebot/app/config"
	"refugebot/app/service/conversation"
	"refugebot/app/service/queue"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const msgTurnFailed = "Something went wrong, please try again."

// Service pumps Telegram updates into per-session turns: every update is
// mapped to a conversation event, processed on the session's mailbox and
// answered with the directives the conversation produced.
type Service struct {
	cfg             *config.Config
	tgClient        *telegram.Client
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		tgClient:        do.MustInvoke[*telegram.Client](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		queueSvc:        do.MustInvoke[*queue.Service](di),
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.pumpUpdates(ctx)
	})

	return group.Wait()
}

func (s *Service) pumpUpdates(ctx context.Context) error {
	updates := s.tgClient.Updates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return context.Canceled
			}

			event := eventFromUpdate(update)
			if event == nil {
				continue
			}

			s.queueSvc.Dispatch(event.SessionID(), func() {
				s.processTurn(ctx, event)
			})
		}
	}
}

func (s *Service) processTurn(ctx context.Context, event conversation.Event) {
	start := time.Now()

	directives, err := s.conversationSvc.Handle(ctx, event)
	if err != nil {
		slog.Error("Turn failed",
			"session_id", event.SessionID(),
			"error", err)

		s.send(tgbotapi.NewMessage(event.SessionID(), msgTurnFailed))

		return
	}

	for _, message := range buildMessages(event.SessionID(), directives) {
		s.send(message)
	}

	slog.Info("Processed turn",
		"session_id", event.SessionID(),
		"duration", time.Since(start))
}

func (s *Service) send(message tgbotapi.Chattable) {
	if err := s.tgClient.Send(message); err != nil {
		slog.Error("Failed to deliver message", "error", err)
	}
}

// eventFromUpdate maps one Telegram update to a conversation event; updates
// the dialogue has no use for map to nil.
func eventFromUpdate(update tgbotapi.Update) conversation.Event {
	message := update.Message
	if message == nil {
		return nil
	}

	chatID := message.Chat.ID

	switch {
	case message.IsCommand():
		switch message.Command() {
		case "search", "nearby":
			return conversation.EntryCommand{Chat: chatID}
		case "cancel":
			return conversation.CancelCommand{Chat: chatID}
		case "skip":
			return conversation.SkipCommand{Chat: chatID}
		default:
			return nil
		}
	case message.Location != nil:
		return conversation.LocationMessage{
			Chat:      chatID,
			Latitude:  message.Location.Latitude,
			Longitude: message.Location.Longitude,
		}
	case message.Text != "":
		return conversation.TextMessage{
			Chat: chatID,
			Text: message.Text,
		}
	default:
		return nil
	}
}
