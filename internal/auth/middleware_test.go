// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/academitrend/academitrend/internal/config"
)

func testSecurityConfig(mode string) *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:       mode,
		JWTSecret:      "test-secret-key-at-least-32-chars-long",
		SessionTimeout: time.Hour,
		AdminUsername:  "admin",
		AdminPassword:  "correct-horse-battery",
	}
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateModeNone(t *testing.T) {
	t.Parallel()

	m, err := NewMiddleware(testSecurityConfig("none"))
	if err != nil {
		t.Fatalf("NewMiddleware: %v", err)
	}

	called := false
	rec := httptest.NewRecorder()
	m.Authenticate(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hello", nil))

	if !called {
		t.Error("handler must be reached without credentials in mode none")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestAuthenticateBasic(t *testing.T) {
	t.Parallel()

	m, err := NewMiddleware(testSecurityConfig("basic"))
	if err != nil {
		t.Fatalf("NewMiddleware: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid credentials",
			authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:correct-horse-battery")),
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "wrong password",
			authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:wrong")),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong username",
			authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte("root:correct-horse-battery")),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Basic not-base64!!!",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, expected %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("called = %v, expected %v", called, tt.wantCalled)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rec.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Basic ") {
					t.Errorf("WWW-Authenticate = %q, expected Basic challenge", got)
				}
			}
		})
	}
}

func TestAuthenticateJWT(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig("jwt")
	m, err := NewMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewMiddleware: %v", err)
	}

	token, err := m.JWTManager().GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		called := false
		req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		var claims *Claims
		m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			claims = ClaimsFromContext(r.Context())
		})).ServeHTTP(rec, req)

		if !called {
			t.Fatal("handler not reached with valid token")
		}
		if claims == nil || claims.Username != "admin" {
			t.Errorf("claims = %+v, expected username admin", claims)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		called := false
		rec := httptest.NewRecorder()
		m.Authenticate(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/forecast", nil))

		if rec.Code != http.StatusUnauthorized || called {
			t.Errorf("status = %d, called = %v, expected 401 without handler call", rec.Code, called)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		called := false
		req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		rec := httptest.NewRecorder()
		m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized || called {
			t.Errorf("status = %d, called = %v, expected 401 without handler call", rec.Code, called)
		}
	})
}

func TestJWTManagerRoundTrip(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testSecurityConfig("jwt"))
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := manager.GenerateToken("alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTManagerExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig("jwt")
	cfg.SessionTimeout = -time.Minute
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := manager.GenerateToken("alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig("jwt")
	cfg.JWTSecret = ""
	if _, err := NewJWTManager(cfg); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestBasicAuthManagerValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewBasicAuthManager("", "longenoughpass"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := NewBasicAuthManager("admin", "short"); err == nil {
		t.Error("expected error for short password")
	}
}
