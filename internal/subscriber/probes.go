package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// MarkReady creates the readiness file.
func MarkReady(path string) error {
	if err := os.WriteFile(path, []byte("ready\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write readiness file: %w", err)
	}
	return nil
}

// KeepAlive touches the liveness file every interval until ctx is done, then removes both probe files.
func KeepAlive(ctx context.Context, livenessPath, readinessPath string, interval time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer removeProbes(logger, livenessPath, readinessPath)

	if err := touch(livenessPath); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := touch(livenessPath); err != nil {
				logger.Error("failed to touch liveness file", "error", err)
			}
		}
	}
}

func touch(path string) error {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to touch %s: %w", path, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
	}
	return nil
}

func removeProbes(logger *slog.Logger, paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove probe file", "path", p, "error", err)
		}
	}
}
