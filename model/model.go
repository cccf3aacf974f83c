/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package model holds the wire and view types shared by the analysis API,
// its Go client and the HTML renderers.
package model

// VitaminFinding is one suspected vitamin deficiency with its supporting
// reason and foods that address it.
type VitaminFinding struct {
	Vitamin          string   `json:"vitamin"`
	Reason           string   `json:"reason"`
	RecommendedFoods []string `json:"recommended_foods"`
}

// AnalysisResult is the outcome of analysing a single uploaded image.
type AnalysisResult struct {
	DetectedDisease     string           `json:"detected_disease"`
	ConfidenceScore     float64          `json:"confidence_score"`
	VitaminDeficiencies []VitaminFinding `json:"vitamin_deficiencies"`
}

// Patient identifies the person a report belongs to.
type Patient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Report is a stored analysis result.
type Report struct {
	ID              string           `json:"report_id"`
	PatientID       string           `json:"patient_id"`
	ImagePath       string           `json:"image_path,omitempty"`
	DetectedDisease string           `json:"detected_disease"`
	ConfidenceScore float64          `json:"confidence_score"`
	VitaminData     []VitaminFinding `json:"vitamin_data"`
	CreatedAt       Timestamp        `json:"created_at"`
}

// PatientReports is the report history of one patient, newest first as
// returned by the server.
type PatientReports struct {
	Patient Patient  `json:"patient"`
	Reports []Report `json:"reports"`
}

// AnalyzeResponse is the envelope returned by POST /api/analyze. Exactly one
// of Result and Error is set.
type AnalyzeResponse struct {
	Success  bool            `json:"success,omitempty"`
	ReportID string          `json:"report_id,omitempty"`
	Result   *AnalysisResult `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// ErrorResponse is the body of every non-analysis API error.
type ErrorResponse struct {
	Error string `json:"error"`
}
