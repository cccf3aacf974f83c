/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"fmt"
	"strings"
)

// Conditions the detector may choose from.
var Conditions = []string{
	"Acne", "Eczema", "Psoriasis", "Fungal Infection", "Vitiligo",
	"Dermatitis", "Conjunctivitis", "Oral Ulcer", "Rash", "Unknown",
}

const validatePrompt = `You are a medical image validator.

Determine whether this image shows a visible human medical condition
related to skin, eyes, or oral regions.

Respond strictly in JSON:

{
  "is_medical_image": true or false,
  "reason": "short explanation"
}`

func buildDetectPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a dermatology analysis assistant.\n\n")
	sb.WriteString("From the provided image, select the most likely visible condition\n")
	sb.WriteString("from the following list:\n\n")
	sb.WriteString(strings.Join(Conditions, ", "))
	sb.WriteString("\n\nRespond strictly in JSON:\n\n")
	sb.WriteString("{\n  \"detected_disease\": \"Disease Name\",\n  \"confidence_score\": number between 0 and 1\n}")

	return sb.String()
}

func buildVitaminPrompt(condition string) string {
	var sb strings.Builder

	sb.WriteString("You are a nutrition and medical reasoning assistant.\n\n")
	sb.WriteString(fmt.Sprintf("Based on the detected disease: %s\n\n", condition))
	sb.WriteString("Provide:\n\n")
	sb.WriteString("1. Possible associated vitamin deficiencies\n")
	sb.WriteString("2. Brief reasoning\n")
	sb.WriteString("3. Recommended food sources for each vitamin\n\n")
	sb.WriteString("Respond strictly in JSON format:\n\n")
	sb.WriteString(`{
  "vitamin_deficiencies": [
    {
      "vitamin": "Vitamin Name",
      "reason": "short explanation",
      "recommended_foods": ["Food 1", "Food 2", "Food 3"]
    }
  ]
}`)

	return sb.String()
}
