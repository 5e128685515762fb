package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reelkeeper/internal/config"
	"reelkeeper/internal/notifications"
	"reelkeeper/internal/services"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		got = append(got, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyTunnelStarted(context.Background(), "https://media.example.com", 42); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).TestNotification(context.Background()); err != nil {
		t.Fatalf("expected noop for nil config, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	server, got := newCaptureServer(t)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyTunnelStarted(ctx, "https://media.example.com", 4242); err != nil {
		t.Fatalf("NotifyTunnelStarted: %v", err)
	}
	if err := svc.NotifyBackfillCompleted(ctx, notifications.BackfillStats{Root: "/videos", Titles: 10, Written: 3, Failed: 1, Duration: 90 * time.Second}); err != nil {
		t.Fatalf("NotifyBackfillCompleted: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "tunnel start"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}

	if len(*got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(*got))
	}
	tunnel := (*got)[0]
	if tunnel.title != "reelkeeper - Tunnel Started" || tunnel.priority != "high" || !strings.Contains(tunnel.body, "pid 4242") {
		t.Fatalf("unexpected tunnel notification %+v", tunnel)
	}
	backfill := (*got)[1]
	if !strings.Contains(backfill.title, "with errors") || !strings.Contains(backfill.body, "3 of 10 titles") || !strings.Contains(backfill.body, "1m30s") {
		t.Fatalf("unexpected backfill notification %+v", backfill)
	}
	if backfill.tags != "reelkeeper,posters,completed" {
		t.Fatalf("unexpected tags %q", backfill.tags)
	}
	errMsg := (*got)[2]
	if !strings.Contains(errMsg.body, "Error with tunnel start: boom") {
		t.Fatalf("unexpected error notification %+v", errMsg)
	}
}

func TestNtfyServiceRespectsToggles(t *testing.T) {
	server, got := newCaptureServer(t)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.TunnelStarted = false
	cfg.Notifications.Backfill = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	_ = svc.NotifyTunnelStarted(ctx, "x", 1)
	_ = svc.NotifyBackfillCompleted(ctx, notifications.BackfillStats{})
	_ = svc.NotifyError(ctx, errors.New("x"), "")
	if len(*got) != 0 {
		t.Fatalf("expected muted events, got %d", len(*got))
	}
	if err := svc.TestNotification(ctx); err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("test notification should ignore toggles, got %d", len(*got))
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic full", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	err := notifications.NewService(&cfg).TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
	if !errors.Is(err, services.ErrStatus) {
		t.Fatalf("expected ErrStatus marker, got %v", err)
	}
}
