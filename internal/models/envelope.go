// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package models defines the JSON wire types shared by the API handlers,
// the database layer, and the prediction engines.
package models

// Envelope is the response envelope carried by every API payload.
//
// Status field values:
//   - "success": request completed, payload fields are populated
//   - "error": request failed, Message describes the failure
//
// The envelope fields are flattened into each response object rather than
// nested under a wrapper, matching the stable JSON contract expected by
// existing dashboard clients.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OK returns a success envelope with the given message.
func OK(message string) Envelope {
	return Envelope{Status: StatusSuccess, Message: message}
}

// Error returns an error envelope with the given message.
func Error(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}

// ErrorResponse is the body returned for any failed request.
// It is the minimal deterministic error envelope: a missing dataset, a bad
// parameter, and an unloaded model all produce this same shape.
type ErrorResponse struct {
	Envelope
}

// NewErrorResponse builds an ErrorResponse with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Envelope: Error(message)}
}
