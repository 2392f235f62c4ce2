package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"refugebot/app/client/directory"
	"refugebot/app/client/geocode"
	"refugebot/app/client/telegram"
	"refugebot/app/config"
	"refugebot/app/server"
	"refugebot/app/service/conversation"
	"refugebot/app/service/engine"
	"refugebot/app/service/queue"
	"refugebot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, telegram.NewClient)
	do.Provide(di, directory.NewClient)
	do.Provide(di, geocode.NewClient)
	do.Provide(di, conversation.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go do.MustInvoke[*server.Service](di).Run(appCtx)

	go func() {
		if err := do.MustInvoke[*engine.Service](di).Run(appCtx); err != nil && appCtx.Err() == nil {
			slog.Error("Engine stopped", "error", err)
			cancel()
		}
	}()

	<-appCtx.Done()
}
