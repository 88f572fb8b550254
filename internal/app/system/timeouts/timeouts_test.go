package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	defer timeouts.Reset()

	timeouts.Configure(timeouts.Config{Medium: 3 * time.Second})
	if got := timeouts.Medium(); got != 3*time.Second {
		t.Errorf("Medium = %v, want 3s", got)
	}
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("Short = %v, want default", got)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer timeouts.Reset()
	t.Setenv("TASKHUB_TIMEOUT_PING", "500ms")
	t.Setenv("TASKHUB_TIMEOUT_LONG", "not-a-duration")
	t.Setenv("TASKHUB_TIMEOUT_SHORT", "-1s")

	if n := timeouts.ConfigureFromEnv(); n != 1 {
		t.Errorf("configured = %d, want 1", n)
	}
	cur := timeouts.Current()
	if cur.Ping != 500*time.Millisecond {
		t.Errorf("Ping = %v", cur.Ping)
	}
	if cur.Long != timeouts.DefaultLong || cur.Short != timeouts.DefaultShort {
		t.Errorf("invalid values should be ignored: %+v", cur)
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := timeouts.WithTimeout(t.Context(), time.Millisecond, zap.New(core), "dashboard load")
	<-ctx.Done()
	cancel()

	if logs.FilterMessage("operation timed out").Len() != 1 {
		t.Error("expected a timeout warning")
	}
}
