// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
)

// slowHandler answers after delay, longer than the server WriteTimeout.
func slowHandler(delay time.Duration) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		time.Sleep(delay)
		_, _ = writer.Write([]byte("minted"))
	})
}

func startServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewUnstartedServer(handler)
	server.Config.WriteTimeout = 50 * time.Millisecond
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func TestWriteDeadline_OutlivesServerWriteTimeout(t *testing.T) {
	server := startServer(t, middleware.WriteDeadline(5*time.Second)(slowHandler(200*time.Millisecond)))

	response, err := http.Get(server.URL)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "minted", string(body))
}

func TestWriteDeadline_ServerTimeoutWithoutIt(t *testing.T) {
	server := startServer(t, slowHandler(200*time.Millisecond))

	response, err := http.Get(server.URL)
	if err == nil {
		defer response.Body.Close()
		_, err = io.ReadAll(response.Body)
	}

	assert.Error(t, err)
}

func TestWriteDeadline_ReachesConnectionThroughLogger(t *testing.T) {
	chain := middleware.StructuredLogger(discardLogger())(
		middleware.WriteDeadline(5 * time.Second)(slowHandler(200 * time.Millisecond)),
	)
	server := startServer(t, chain)

	response, err := http.Get(server.URL)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, "minted", string(body))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
