package tlog

import (
	"io"
	"log/slog"
	"os"
	"twitchlink/pkg/build"
	"twitchlink/pkg/config"

	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

func Init(cfg *config.Config) error {
	slog.SetDefault(New(cfg, os.Stderr))
	return nil
}

// New builds the fanout logger. Links are printed on stdout, so w is
// normally stderr.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	logHandlers := []slog.Handler{slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   true,
		Level:       parseLevel(cfg.Log.Level),
		ReplaceAttr: nil,
	})}

	if cfg.Log.Telegram.Token != "" && cfg.Log.Telegram.ChatID != "" {
		logHandlers = append(logHandlers, slogtelegram.Option{
			Level:     slog.LevelError,
			Token:     cfg.Log.Telegram.Token,
			Username:  cfg.Log.Telegram.ChatID,
			AddSource: true,
		}.NewTelegramHandler())
	}

	multiHandler := slogmulti.Fanout(logHandlers...)
	ctxHandler := &contextHandler{multiHandler}

	return slog.New(ctxHandler).With(
		slog.String("app", "twitchlink"),
		slog.String("app_tag", build.Tag),
	)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
