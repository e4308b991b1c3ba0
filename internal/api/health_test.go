// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		deps   HealthDependencies
		status int
		state  string
	}{
		{"all_ready", HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready"},
		{"redis_down", HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := NewHealthHandlers(tt.deps, slog.New(slog.NewTextHandler(io.Discard, nil)))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)

			var body struct {
				Data struct {
					Status string        `json:"status"`
					Checks []checkResult `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body.Data.Status)
			assert.Len(t, body.Data.Checks, 2)
		})
	}
}

func TestLiveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
