// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryInt parses an optional integer query parameter.

Returns:
  - *int: nil when the parameter is absent
  - error: a validation error when it is present but not an integer
*/
func QueryInt(request *http.Request, name string) (*int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be an integer")
	}
	return &value, nil
}

/*
RequiredAccountID returns the ledger account of the authenticated caller.

Returns:
  - string: account id such as "afiq.testnet"
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredAccountID(request *http.Request) (string, error) {
	accountID := ctxutil.AccountID(request.Context())
	if accountID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return accountID, nil
}
