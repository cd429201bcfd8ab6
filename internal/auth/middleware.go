// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package auth enforces the configured authentication mode on the API:
// none (open access), basic (HTTP Basic against the admin account), or
// jwt (bearer tokens issued by the login endpoint).
package auth

import (
	"context"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/academitrend/academitrend/internal/config"
	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/models"
)

type contextKey string

// ClaimsContextKey stores the authenticated *Claims on the request context.
const ClaimsContextKey contextKey = "claims"

// Middleware enforces the configured auth mode on protected routes.
type Middleware struct {
	jwtManager       *JWTManager
	basicAuthManager *BasicAuthManager
	authMode         string
}

// NewMiddleware builds the auth middleware for the configured mode.
// Managers that the mode does not need may be nil.
func NewMiddleware(cfg *config.SecurityConfig) (*Middleware, error) {
	m := &Middleware{authMode: cfg.AuthMode}

	if cfg.AuthMode == "basic" || cfg.AuthMode == "jwt" {
		basicManager, err := NewBasicAuthManager(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		m.basicAuthManager = basicManager
	}

	if cfg.AuthMode == "jwt" {
		jwtManager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		m.jwtManager = jwtManager
	}

	return m, nil
}

// JWTManager exposes the token manager for the login handler. Nil unless
// the auth mode is jwt.
func (m *Middleware) JWTManager() *JWTManager {
	return m.jwtManager
}

// BasicAuthManager exposes the credential validator for the login handler.
// Nil when the auth mode is none.
func (m *Middleware) BasicAuthManager() *BasicAuthManager {
	return m.basicAuthManager
}

// Authenticate wraps a handler with the configured authentication check.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch m.authMode {
		case "basic":
			m.handleBasicAuth(w, r, next)
		case "jwt":
			m.handleJWTAuth(w, r, next)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (m *Middleware) handleBasicAuth(w http.ResponseWriter, r *http.Request, next http.Handler) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		w.Header().Set("WWW-Authenticate", m.basicAuthManager.WWWAuthenticateHeader())
		writeUnauthorized(w, "authentication required")
		return
	}

	username, err := m.basicAuthManager.ValidateCredentials(authHeader)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("basic auth validation failed")
		w.Header().Set("WWW-Authenticate", m.basicAuthManager.WWWAuthenticateHeader())
		writeUnauthorized(w, "invalid credentials")
		return
	}

	claims := &Claims{Username: username, Role: "admin"}
	ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (m *Middleware) handleJWTAuth(w http.ResponseWriter, r *http.Request, next http.Handler) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeUnauthorized(w, "bearer token required")
		return
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("token validation failed")
		writeUnauthorized(w, "invalid or expired token")
		return
	}

	ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// ClaimsFromContext returns the authenticated claims, or nil on open routes.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

func bearerToken(authHeader string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(models.NewErrorResponse(message)); err != nil {
		logging.Error().Err(err).Msg("failed to encode unauthorized response")
	}
}
