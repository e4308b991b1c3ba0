// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/storage"
)

func TestHandler_Get(t *testing.T) {
	backend := &fakeBackend{content: map[string][]byte{metadataCID: []byte(`{"title":"Paradigm"}`)}}
	store := storage.NewCachedStore(backend, newMemoryCache(), time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := storage.NewHandler(store).Routes()

	tests := []struct {
		name   string
		cid    string
		status int
	}{
		{"found", metadataCID, http.StatusOK},
		{"unknown", coverCID, http.StatusNotFound},
		{"malformed", "not-a-cid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+tt.cid, nil))

			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+metadataCID, nil))
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"Paradigm"}`, recorder.Body.String())
}

func TestHandler_UploadRequiresCreator(t *testing.T) {
	store := storage.NewCachedStore(&fakeBackend{cid: coverCID}, newMemoryCache(), time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := storage.NewHandler(store).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
