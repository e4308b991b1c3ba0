// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Lists are navigated with skip/limit offsets read from the "__skip" and
// "__limit" query parameters, and the response envelope echoes both back.
package pagination

import (
	"net/http"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/convert"
)

const (
	// QuerySkip and QueryLimit are the query parameter names.
	QuerySkip  = "__skip"
	QueryLimit = "__limit"
)

// Params holds the parsed skip and limit from a request's query string.
type Params struct {
	Skip  int
	Limit int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// NewMeta constructs pagination metadata for a response holding count items.
func NewMeta(params Params, count int) Meta {
	return Meta{Skip: params.Skip, Limit: params.Limit, Count: count}
}

// FromRequest parses "__skip" and "__limit" from an HTTP request.
//
// # Clamping
//
// Negative skips become 0. A missing, invalid or oversized limit becomes maxLimit.
func FromRequest(r *http.Request, maxLimit int) Params {
	query := r.URL.Query()

	skip := convert.ToIntD(query.Get(QuerySkip), 0)
	if skip < 0 {
		skip = 0
	}

	limit := convert.ToIntD(query.Get(QueryLimit), maxLimit)
	if limit < 1 || limit > maxLimit {
		limit = maxLimit
	}

	return Params{Skip: skip, Limit: limit}
}
