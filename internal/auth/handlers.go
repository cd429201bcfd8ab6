// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package auth

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns a signed session token.
type LoginResponse struct {
	models.Envelope
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	Role      string `json:"role"`
}

// LoginHandler exchanges admin credentials for a JWT. Only registered when
// the auth mode is jwt.
func (m *Middleware) LoginHandler(sessionTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
			return
		}

		if err := m.basicAuthManager.ValidateLogin(req.Username, req.Password); err != nil {
			logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("login rejected")
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("invalid username or password"))
			return
		}

		token, err := m.jwtManager.GenerateToken(req.Username, "admin")
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to issue token"))
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Envelope:  models.OK("login successful"),
			Token:     token,
			ExpiresIn: int(sessionTimeout.Seconds()),
			Role:      "admin",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("failed to encode login response")
	}
}
