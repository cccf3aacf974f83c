/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

// User-facing messages returned by the API and UI handlers.
const (
	msgUploadFormInvalid  = "Failed to parse upload form"
	msgPatientFieldsEmpty = "patient_id and name are required"
	msgPatientIDSlash     = "patient_id must not contain '/'"
	msgImageRequired      = "image is required"
	msgPatientNotFound    = "Patient not found"
	msgInternalError      = "Internal server error"

	analysisErrorPrefix = "An error occurred during analysis: "
	lookupErrorPrefix   = "Error loading reports: "
)
