package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func up() Pinger {
	return PingerFunc(func(_ context.Context) error { return nil })
}

func down(msg string) Pinger {
	return PingerFunc(func(_ context.Context) error { return errors.New(msg) })
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c := NewChecker(down("db dead"), down("redis dead"), testLogger(), prometheus.NewRegistry())

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Errorf("liveness = %q, want up", result.Status)
	}
}

func TestReadiness_AllDependenciesUp(t *testing.T) {
	c := NewChecker(up(), up(), testLogger(), prometheus.NewRegistry())

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
	for _, dep := range []string{"postgres", "redis"} {
		if result.Checks[dep].Status != "up" {
			t.Errorf("%s = %q, want up", dep, result.Checks[dep].Status)
		}
	}
}

func TestReadiness_RedisDown(t *testing.T) {
	c := NewChecker(up(), down("connection refused"), testLogger(), prometheus.NewRegistry())

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Errorf("status = %q, want down", result.Status)
	}
	if result.Checks["postgres"].Status != "up" {
		t.Errorf("postgres = %q, want up", result.Checks["postgres"].Status)
	}
	if result.Checks["redis"].Status != "down" {
		t.Errorf("redis = %q, want down", result.Checks["redis"].Status)
	}
	if result.Checks["redis"].Error != "connection refused" {
		t.Errorf("redis error = %q", result.Checks["redis"].Error)
	}
}

func TestReadiness_PostgresDown(t *testing.T) {
	c := NewChecker(down("pool closed"), up(), testLogger(), prometheus.NewRegistry())

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Errorf("status = %q, want down", result.Status)
	}
	if result.Checks["postgres"].Status != "down" {
		t.Errorf("postgres = %q, want down", result.Checks["postgres"].Status)
	}
}
