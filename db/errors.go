/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in connection string")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")

	// ErrPatientNotFound is returned when no patient has the requested ID.
	ErrPatientNotFound = errors.New("patient not found")

	errPatientIDRequired    = errors.New("patient ID is required")
	errPatientNameRequired  = errors.New("patient name is required")
	errInvalidSessionConfig = errors.New("invalid session config")
)
