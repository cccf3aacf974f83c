/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "errors"

var (
	errConfigIncomplete = errors.New("analysis model configuration incomplete: LLM_URL and LLM_MODEL must be set")
	errEmptyImage       = errors.New("image is empty")
	errNoChoices        = errors.New("model returned no choices")
	errNoJSONObject     = errors.New("model reply contains no JSON object")
)

// Messages shown to users when an image is rejected.
const (
	NotMedicalImageMessage = "Uploaded image is not medically relevant."
	LowConfidenceMessage   = "Unable to determine condition with sufficient confidence."
)

// RejectedError means the model looked at the image and declined to give a
// diagnosis. It is a user-facing outcome, not a fault.
type RejectedError struct {
	Message string
	Reason  string
}

func (e *RejectedError) Error() string {
	return e.Message
}
