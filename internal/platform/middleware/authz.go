// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package middleware

import (
	"context"
	"net/http"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/sec"
)

// AuthVerifier turns a raw Authorization header into account claims.
type AuthVerifier interface {
	VerifyAuthorization(ctx context.Context, header string) (*sec.AuthClaims, error)
}

// Authenticate verifies the signed Authorization header when one is present.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Header present: verify signature and ledger key binding via [AuthVerifier].
//  3. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Signature Verification ─────────────────────────────────────
			claims, err := verifier.VerifyAuthorization(request.Context(), header)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "authorization_rejected", "error", err)
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization"))
				return
			}

			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.accountID = claims.AccountID
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose account does not hold at least role.
// It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !claims.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
