//go:build unix

package bootstrap

import (
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kbukum/procout/config"
)

func TestRunTaskSignalCancelsContext(t *testing.T) {
	app, buf := newTestApp(t, &testConfig{ServiceConfig: config.ServiceConfig{Name: "procout"}})
	app.signals = []os.Signal{syscall.SIGUSR1}

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("signal did not cancel the task")
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !strings.Contains(buf.String(), "task canceled by signal") {
		t.Errorf("expected cancellation to be logged, got %q", buf.String())
	}
}
