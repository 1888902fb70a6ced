package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// exit is replaced in tests
var exit = os.Exit

func run(ctx context.Context, hook KeyboardHook, filter EventFilter, logger *slog.Logger) int {
	if err := hook.Start(filter); err != nil {
		logger.Error("failed to start keyboard hook", "error", err)
		return 1
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("stopping")
			if err := hook.Stop(); err != nil {
				// Run would never return; the OS drops the hook with the process
				logger.Error("failed to stop keyboard hook", "error", err)
				exit(1)
			}
		case <-done:
		}
	}()

	logger.Info("numslash running", "source", slashRule.Source, "target", slashRule.Target)
	if err := hook.Run(); err != nil {
		logger.Error("message loop failed", "error", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	filter := NewInterceptionFilter(slashRule, NewModifierSource(), NewInputInjector())
	code := run(ctx, NewKeyboardHook(), filter, newLogger(os.Stderr))

	stop()
	exit(code)
}
