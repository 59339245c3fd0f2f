package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/d1mk9/hwStatusBot/configs"
	"github.com/d1mk9/hwStatusBot/internal/api"
	"github.com/d1mk9/hwStatusBot/internal/bot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.LoadConfig()
	if err != nil {
		slog.Error("не удалось загрузить конфигурацию", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("отсутствуют обязательные токены, работа бота будет завершена", slog.String("error", err.Error()))
		return
	}

	botAPI, err := bot.NewBotAPI(cfg.TelegramToken, "", logger)
	if err != nil {
		logger.Error("не удалось запустить бота", slog.String("error", err.Error()))
		os.Exit(1)
	}

	notifier, err := bot.NewNotifier(botAPI, cfg.ChatID, logger)
	if err != nil {
		logger.Error("не удалось запустить бота", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client := api.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger)
	poller := bot.NewPoller(client, notifier, cfg.RetryPeriod, logger)

	logger.Info("бот запущен", slog.Duration("retry_period", cfg.RetryPeriod))
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("опрос завершился с ошибкой", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("done")
}

func setupLogger(level string) *slog.Logger {
	envLogLevel := strings.ToLower(level)
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(envLogLevel)); err != nil {
		log.Printf("encountered log level: '%s'. The package does not support custom log levels", envLogLevel)
		slogLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(slogLevel)

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = filepath.Base(source.File)
			}
		}
		return a
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		AddSource:   true,
		Level:       slogLevel,
		ReplaceAttr: replaceAttrs,
	}))

	slog.SetDefault(logger)
	logger.Debug("debug messages are enabled")

	return logger
}
