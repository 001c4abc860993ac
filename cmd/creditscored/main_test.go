package main

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"creditscores/internal/client"
	"creditscores/internal/testsupport"
)

func TestRunServerServesUntilCancelled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testsupport.NewConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, cfg, nil, func(addr string) { ready <- addr })
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("runServer returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not become ready")
	}

	c := client.New("http://"+addr, 2*time.Second)
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Status != "ok" || health.Records != 0 {
		t.Fatalf("unexpected health: %#v", health)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServer returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRootCommandRejectsBadBind(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	t.Setenv("CREDITSCORES_DATA_DIR", cfg.Paths.DataDir)
	t.Setenv("CREDITSCORES_LOG_DIR", cfg.Paths.LogDir)
	t.Setenv("HOME", testsupport.BaseDir(cfg))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--bind", "not-an-address"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected invalid bind to fail")
	}
}
