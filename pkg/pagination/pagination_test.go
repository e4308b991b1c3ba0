// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected pagination.Params
	}{
		{"defaults", "", pagination.Params{Skip: 0, Limit: 10}},
		{"explicit", "?__skip=20&__limit=5", pagination.Params{Skip: 20, Limit: 5}},
		{"limit_clamped", "?__limit=500", pagination.Params{Skip: 0, Limit: 10}},
		{"negative_skip", "?__skip=-3", pagination.Params{Skip: 0, Limit: 10}},
		{"garbage", "?__skip=abc&__limit=xyz", pagination.Params{Skip: 0, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/comments"+tt.query, nil)
			assert.Equal(t, tt.expected, pagination.FromRequest(request, 10))
		})
	}
}
