package server

import (
	"context"
	"log/slog"

	"refugebot/app/config"
	"refugebot/app/service/conversation"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

// Service exposes liveness and session stats over HTTP.
type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service
	app             *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
	}

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	s.app.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"active_sessions": s.conversationSvc.ActiveSessions(),
		})
	})

	return s, nil
}

func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		if err := s.app.Shutdown(); err != nil {
			slog.Error("Failed to shut down status server", "error", err)
		}
	}()

	slog.Info("Status server listening", "addr", s.cfg.Server.Addr)

	if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
		slog.Error("Status server stopped", "error", err)
	}
}
