package jellyfin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelkeeper/internal/config"
	"reelkeeper/internal/services"
	"reelkeeper/internal/services/jellyfin"
)

func TestRefreshTriggersLibraryScan(t *testing.T) {
	refreshCalled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Library/Refresh" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if token := r.Header.Get("X-Emby-Token"); token != "token-123" {
			t.Errorf("unexpected token: %q", token)
		}
		refreshCalled = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Jellyfin.Enabled = true
	cfg.Jellyfin.URL = server.URL + "/"
	cfg.Jellyfin.APIKey = "token-123"

	if err := jellyfin.NewConfiguredService(&cfg).Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if !refreshCalled {
		t.Fatal("expected refresh endpoint to be called")
	}
}

func TestNewConfiguredServiceDisabledIsNoop(t *testing.T) {
	cfg := config.Default()
	cfg.Jellyfin.Enabled = true
	cfg.Jellyfin.URL = "http://127.0.0.1:1"
	// Missing API key keeps the integration off.
	if err := jellyfin.NewConfiguredService(&cfg).Refresh(context.Background()); err != nil {
		t.Fatalf("expected noop refresh, got %v", err)
	}
	if err := jellyfin.NewConfiguredService(nil).Refresh(context.Background()); err != nil {
		t.Fatalf("expected noop refresh for nil config, got %v", err)
	}
}

func TestRefreshReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := jellyfin.NewClient(server.URL, "key", nil).Refresh(context.Background())
	if !errors.Is(err, services.ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := jellyfin.NewClient(server.URL, "good", nil).Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	err := jellyfin.NewClient(server.URL, "bad", nil).Ping(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad key, got %v", err)
	}
}
