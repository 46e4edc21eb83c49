// main.go - process entry point: flags, logger, engine/dispatcher wiring,
// and the stdin control loop, per spec.md §6.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func main() {
	cfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	engine := NewEngine(logger)
	dispatcher := NewDispatcher(engine, logger)

	if cfg.ConfigPath != "" {
		preset, err := LoadSessionPreset(cfg.ConfigPath)
		if err != nil {
			logger.Error("failed to load session preset", "path", cfg.ConfigPath, "error", err)
			os.Exit(1)
		}
		dispatcher.withRouter(func(r *Router) { preset.ApplyTo(r) })
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			cp := make([]byte, len(line))
			copy(cp, line)
			dispatcher.HandleLine(cp)
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		<-gctx.Done()
		engine.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("exiting on error", "error", err)
		os.Exit(1)
	}
}
