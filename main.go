package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DuarteFaria/clipz/clipback"
)

func main() {
	jsonAPI := flag.Bool("json-api", false, "Serve the line-oriented JSON protocol on stdin/stdout")
	lowPower := flag.Bool("low-power", false, "Poll less often to save battery")
	responsive := flag.Bool("responsive", false, "Poll more often for lower capture latency")
	listen := flag.String("listen", "", "Also serve the JSON protocol on this TCP address (e.g. :7855)")
	autoPaste := flag.Bool("auto-paste", false, "Synthesize a paste keystroke after select-entry")
	wipe := flag.Bool("wipe", false, "Delete the history and persisted file, then exit")
	flag.Parse()

	setupLogging()

	cfg := BalancedConfig()
	switch {
	case *lowPower && *responsive:
		log.Fatal("cannot combine --low-power and --responsive")
	case *lowPower:
		cfg = LowPowerConfig()
	case *responsive:
		cfg = ResponsiveConfig()
	}
	cfg = applyEnvOverrides(cfg)

	backend, err := clipback.NewSystemBackend(cfg.MaxFetchBytes)
	if err != nil {
		if errors.Is(err, clipback.ErrUnsupported) {
			log.Fatalf("clipboard is not available on this system: %v", err)
		}
		log.Fatalf("failed to open clipboard: %v", err)
	}

	app, err := NewApp(cfg, backend, "")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	app.autoPaste = *autoPaste

	if *wipe {
		if err := app.WipeAll(); err != nil {
			log.Fatalf("wipe failed: %v", err)
		}
		logger.Info("history wiped")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A dead poller cancels this context so both command surfaces wind
	// down and the final flush still runs.
	ctx = app.Start(ctx)

	if *listen != "" {
		tcp := NewTCPGateway(NewGateway(app), os.Getenv("CLIPZ_TOKEN_SECRET"))
		go func() {
			if err := tcp.Listen(ctx, *listen); err != nil {
				logger.Error("tcp gateway stopped", "error", err)
			}
		}()
	}

	if *jsonAPI {
		if err := NewGateway(app).Serve(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("protocol session ended", "error", err)
		}
	} else {
		NewConsole(app, os.Stdout).Run(ctx, os.Stdin)
	}

	stop()
	app.Shutdown()
}
