package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"postboard/app/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeGracefulShutdown(t *testing.T) {
	// Find an available port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	t.Setenv("POSTBOARD_ENV", "test")
	t.Setenv("POSTBOARD_LOG_LEVEL", "error")
	t.Setenv("POSTBOARD_STORE_DRIVER", "memory")
	t.Setenv("POSTBOARD_SERVER_HOST", "127.0.0.1")
	t.Setenv("POSTBOARD_SERVER_PORT", fmt.Sprint(port))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, []string{"-config", "testdata/none.yaml"})
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d/api/posts", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base, "application/json", strings.NewReader(`{"title":"Hello","contents":"World"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Initiate graceful shutdown.
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = config.DriverMemory

		store, err := openStore(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		assert.NoError(t, store.Close())
	})

	t.Run("badger", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Path = t.TempDir() + "/nested/badger"

		store, err := openStore(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Posts().Find(ctx)
		assert.NoError(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "sqlite"

		_, err := openStore(ctx, cfg, zerolog.Nop())
		assert.Error(t, err)
	})
}
