/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPatientID is returned before any request is made when a lookup has no patient ID.
	ErrEmptyPatientID = errors.New("patient ID is required")
	// ErrPatientNotFound is returned when the server answers a lookup with 404.
	ErrPatientNotFound = errors.New("patient not found")

	errMissingImage     = errors.New("image is required")
	errEmptyAnalysis    = errors.New("response contained neither a result nor an error")
	errBaseURLRequired  = errors.New("api base URL is required")
	errUnexpectedStatus = errors.New("unexpected response status")
)

// ServerError is an analysis failure reported by the server in the response
// body. Message is shown to the user verbatim.
type ServerError struct {
	Message string
	Reason  string
}

func (e *ServerError) Error() string {
	if e.Reason == "" {
		return e.Message
	}

	return fmt.Sprintf("%s (%s)", e.Message, e.Reason)
}
