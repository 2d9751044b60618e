// Command teleping sends one message to the configured chat.
//
// Credentials come from TELEGRAM_BOT_TOKEN and CHAT_ID, read from the
// environment or from a dotenv file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prilive-com/teleping/sender"
	"github.com/prilive-com/teleping/tg"
)

const defaultText = "Hello from TelePing! 🚀"

var (
	envFile   = flag.String("env", ".env", "Dotenv file to read configuration from (missing file is ignored)")
	text      = flag.String("text", defaultText, "Message text")
	parseMode = flag.String("parse-mode", "", "Parse mode: HTML or Markdown (anything else sends plain text)")
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error (default from TELEPING_LOG_LEVEL or info)")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level()}))

	cfg, err := sender.LoadConfig(*envFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	client, err := sender.NewFromConfig(*cfg, sender.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res := client.Send(ctx, *text, tg.ParseMode(*parseMode))
	if !res.Success {
		fmt.Printf("❌ Failed to send message: %s\n", res.Detail)
		return 1
	}

	fmt.Printf("✅ Message sent successfully! Message ID: %d\n", res.MessageID)
	return 0
}

func level() slog.Level {
	name := *logLevel
	if name == "" {
		name = os.Getenv("TELEPING_LOG_LEVEL")
	}
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
