package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"
	"twitchlink/app/client/cdn"
	"twitchlink/app/client/gql"
	"twitchlink/app/client/twitch"
	"twitchlink/app/client/usher"
	"twitchlink/app/service/resolver"
	"twitchlink/app/service/stream"
	"twitchlink/app/service/vod"
	"twitchlink/pkg/config"
	sentry2 "twitchlink/pkg/sentry"
	"twitchlink/pkg/tlog"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	if len(os.Args) != 2 {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: twitchlink <vod id | channel>")
		os.Exit(2)
	}

	appCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	di := do.New()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = tlog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	if err = sentry2.Init(cfg); err != nil {
		slog.Error("Sentry initialization failed", slog.Any("error", err))
	}

	do.Provide(di, config.NewCredentials)
	do.Provide(di, twitch.NewClient)
	do.Provide(di, gql.New)
	do.Provide(di, usher.New)
	do.Provide(di, cdn.New)
	do.Provide(di, vod.New)
	do.Provide(di, stream.New)
	do.Provide(di, resolver.New)

	if err = do.MustInvoke[*resolver.Service](di).Run(appCtx, os.Args[1]); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		log.Fatalf("resolve %s failed: %v", os.Args[1], err)
	}

	sentry.Flush(time.Second)
	_ = di.Shutdown()
}
