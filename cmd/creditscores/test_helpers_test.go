package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"creditscores/internal/config"
	"creditscores/internal/daemon"
	"creditscores/internal/scores"
	"creditscores/internal/testsupport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cliTestEnv struct {
	cfg        *config.Config
	store      *scores.Store
	daemon     *daemon.Daemon
	configPath string
	serverURL  string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	store := testsupport.MustOpenStore(t, cfg)
	d, err := daemon.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		cancel()
		t.Fatalf("daemon start: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		d.Stop()
	})

	env := &cliTestEnv{
		cfg:        cfg,
		store:      store,
		daemon:     d,
		configPath: filepath.Join(base, "creditscores.toml"),
		serverURL:  "http://" + d.Addr(),
		baseDir:    base,
	}
	writeTestConfig(t, env.configPath, cfg, env.serverURL)
	return env
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config, serverURL string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[server]\nbind = %q\n\n[client]\nserver_url = %q\ntimeout_seconds = 5\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Server.Bind,
		serverURL,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if env != nil {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
