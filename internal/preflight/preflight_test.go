package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"creditscores/internal/api"
	"creditscores/internal/client"
	"creditscores/internal/config"
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

func TestCheckServer_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Records: 4})
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), client.New(srv.URL, time.Second))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "4 records") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckServer_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "database closed"})
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), client.New(srv.URL, time.Second))
	if result.Passed {
		t.Fatal("expected failure for 503")
	}
}

func TestCheckServer_MissingURL(t *testing.T) {
	result := CheckServer(context.Background(), client.New("", time.Second))
	if result.Passed {
		t.Fatal("expected failure for missing url")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, true); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestRunAll_LocalOnly(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.LogDir = filepath.Join(base, "missing-logs")

	results := RunAll(context.Background(), &cfg, true)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("expected data dir to pass: %s", results[0].Detail)
	}
	if results[1].Passed {
		t.Fatal("expected missing log dir to fail")
	}
}
