package gatewaychecker

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

type fakeSessionObserver struct {
	online bool
}

func (f *fakeSessionObserver) Online() bool {
	return f.online
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckerOnline(t *testing.T) {
	t.Parallel()

	checker := NewChecker(newTestLogger(), &fakeSessionObserver{online: true})
	items := checker.ListChecks(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected 1 check, got %d", len(items))
	}
	if items[0].ID != "gateway.session" {
		t.Fatalf("unexpected check id: %s", items[0].ID)
	}
	if items[0].Status != "ok" {
		t.Fatalf("expected ok status, got %s", items[0].Status)
	}
}

func TestCheckerOffline(t *testing.T) {
	t.Parallel()

	checker := NewChecker(newTestLogger(), &fakeSessionObserver{online: false})
	items := checker.ListChecks(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected 1 check, got %d", len(items))
	}
	if items[0].Status != "error" {
		t.Fatalf("expected error status, got %s", items[0].Status)
	}
	if items[0].Detail == "" {
		t.Fatalf("expected detail on failed check")
	}
}

func TestCheckerNilObserver(t *testing.T) {
	t.Parallel()

	checker := NewChecker(newTestLogger(), nil)
	items := checker.ListChecks(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected service warning check, got %d", len(items))
	}
	if items[0].Status != "warn" {
		t.Fatalf("expected warn status, got %s", items[0].Status)
	}
}

func TestCheckerCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker := NewChecker(newTestLogger(), &fakeSessionObserver{online: true})
	if items := checker.ListChecks(ctx); len(items) != 0 {
		t.Fatalf("expected no checks on canceled context, got %d", len(items))
	}
}
