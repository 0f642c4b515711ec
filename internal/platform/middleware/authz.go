// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/ctxutil"
	"github.com/serg350/yamdb-final/internal/platform/respond"
	"github.com/serg350/yamdb-final/internal/platform/sec"
)

// # Authentication & Authorization

// TokenVerifier abstracts JWT validation for the authentication middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

const bearerPrefix = "Bearer "

// Authenticate extracts and verifies the Bearer token, if present.
//
// The middleware is non-blocking: anonymous requests pass through untouched,
// and only requests that DO carry a token are rejected when that token is
// invalid. Endpoint-level guards decide whether anonymity is acceptable.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Read the Authorization header
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Enforce the Bearer scheme
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				respond.Error(writer, request, apperr.Unauthorized("Authorization header must use the Bearer scheme"))
				return
			}

			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

			// 3. Verify signature and expiry
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// 4. Inject the verified identity into the context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. It must run after [Authenticate].
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if ctxutil.GetAuthUser(request.Context()) == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequirePolicy evaluates a declarative authorization policy for the route
// subtree it wraps.
//
// Side-effect-free methods (GET, HEAD, OPTIONS) go through the policy's read
// gate; mutating methods go through the collection gate. Object-level
// ownership checks cannot be decided here because the resource has not been
// loaded yet, so services perform them via [sec.Policy.Authorize].
func RequirePolicy(policy sec.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetAuthUser(request.Context()).Actor()

			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if !policy.AllowsRead(actor) {
					if actor == nil {
						respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
						return
					}
					respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
					return
				}
			default:
				if err := policy.AuthorizeCollection(actor); err != nil {
					respond.Error(writer, request, err)
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}
