package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelkeeper/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckJellyfin_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckJellyfin(context.Background(), srv.URL, "good-key")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckJellyfin_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckJellyfin(context.Background(), srv.URL, "bad-key")
	if result.Passed || result.Detail != "auth failed (invalid api key)" {
		t.Fatalf("expected auth failure, got %+v", result)
	}
}

func TestCheckJellyfin_MissingSettings(t *testing.T) {
	if r := CheckJellyfin(context.Background(), "", "key"); r.Passed || r.Detail != "missing url" {
		t.Fatalf("unexpected result %+v", r)
	}
	if r := CheckJellyfin(context.Background(), "http://example", ""); r.Passed || r.Detail != "missing api key" {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestCheckTunnelConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yml")
	if err := os.WriteFile(good, []byte("tunnel: media\ncredentials-file: c.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckTunnelConfig(good, "media"); !r.Passed || strings.Contains(r.Detail, "warning") {
		t.Fatalf("expected clean pass, got %+v", r)
	}

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, []byte("credentials-file: c.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckTunnelConfig(empty, "media"); !r.Passed || !strings.Contains(r.Detail, "warning") {
		t.Fatalf("expected pass with warning, got %+v", r)
	}

	if r := CheckTunnelConfig(filepath.Join(dir, "missing.yml"), "media"); r.Passed {
		t.Fatalf("expected failure for missing file, got %+v", r)
	}
}

func TestCheckEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	if r := CheckEndpoint(context.Background(), srv.URL+"/", 2); !r.Passed {
		t.Fatalf("expected endpoint up, got %+v", r)
	}
	if r := CheckEndpoint(context.Background(), srv.URL+"/down", 2); r.Passed || !strings.Contains(r.Detail, "502") {
		t.Fatalf("expected endpoint down with status, got %+v", r)
	}
}

func TestCheckOMDb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}
		_, _ = w.Write([]byte(`{"Response":"True","Poster":"N/A"}`))
	}))
	defer srv.Close()

	if r := CheckOMDb(context.Background(), "good", srv.URL); !r.Passed {
		t.Fatalf("expected pass, got %+v", r)
	}
	if r := CheckOMDb(context.Background(), "bad", srv.URL); r.Passed || !strings.Contains(r.Detail, "Invalid API key") {
		t.Fatalf("expected rejection, got %+v", r)
	}
	if r := CheckOMDb(context.Background(), "", srv.URL); r.Passed {
		t.Fatalf("expected failure for missing key, got %+v", r)
	}
}

func TestRunAllSkipsUnconfiguredTools(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	results := RunAll(context.Background(), &cfg)
	if len(results) != 1 || results[0].Name != "Log directory" {
		t.Fatalf("expected only the log directory check, got %+v", results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all passed, got %+v", results)
	}
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
