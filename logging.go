package main

import (
	"log/slog"
	"os"
	"strings"
)

// logger writes to stderr: stdout belongs to the protocol in json-api
// mode and to the console otherwise.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// setupLogging rebuilds the logger honoring CLIPZ_LOG_LEVEL.
func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("CLIPZ_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
