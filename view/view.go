/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package view renders analysis results, errors and report histories as HTML
// fragments. Every renderer is a pure function of its input.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/humaidq/vitascan/model"
)

// Disclaimer is shown under every analysis result.
const Disclaimer = "⚠️ This is an indicative analysis for educational purposes only. Consult a healthcare professional."

// Fixed lookup messages.
const (
	PatientNotFoundMessage = "Patient not found"
	NoReportsMessage       = "No reports found for this patient."
	MissingPatientIDPrompt = "Please enter a Patient ID"
	phonePlaceholder       = "N/A"
	reportDateLayout       = "1/2/2006, 3:04:05 PM"
)

//go:embed fragments/*.html
var fragmentFS embed.FS

var fragments = template.Must(template.New("fragments").ParseFS(fragmentFS, "fragments/*.html"))

type resultView struct {
	Disease    string
	Confidence string
	Vitamins   []model.VitaminFinding
	Disclaimer string
}

type reportCard struct {
	Date       string
	Disease    string
	Confidence string
	Vitamins   []model.VitaminFinding
}

type reportsView struct {
	Name    string
	ID      string
	Phone   string
	Reports []reportCard
}

// FormatConfidence renders a score in [0,1] as a percentage with one decimal.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// FormatReportDate renders a report instant in loc, nil meaning the local zone.
func FormatReportDate(ts model.Timestamp, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return ts.In(loc).Format(reportDateLayout)
}

// RenderResult renders a successful analysis.
func RenderResult(result model.AnalysisResult) (template.HTML, error) {
	return execute("result", resultView{
		Disease:    result.DetectedDisease,
		Confidence: FormatConfidence(result.ConfidenceScore),
		Vitamins:   result.VitaminDeficiencies,
		Disclaimer: Disclaimer,
	})
}

// RenderError renders message as an error block.
func RenderError(message string) (template.HTML, error) {
	return execute("error", message)
}

// RenderNotice renders a bare error line in the lookup panel.
func RenderNotice(message string) (template.HTML, error) {
	return execute("notice", message)
}

// RenderWarning renders a non-fatal prompt, such as a missing patient ID.
func RenderWarning(message string) (template.HTML, error) {
	return execute("warning", message)
}

// RenderPatientReports renders a patient's report history. Reports keep the
// order they were received in; times are shown in loc.
func RenderPatientReports(data model.PatientReports, loc *time.Location) (template.HTML, error) {
	if len(data.Reports) == 0 {
		return execute("reports_empty", nil)
	}

	phone := data.Patient.Phone
	if phone == "" {
		phone = phonePlaceholder
	}

	v := reportsView{
		Name:    data.Patient.Name,
		ID:      data.Patient.ID,
		Phone:   phone,
		Reports: make([]reportCard, 0, len(data.Reports)),
	}

	for _, r := range data.Reports {
		v.Reports = append(v.Reports, reportCard{
			Date:       FormatReportDate(r.CreatedAt, loc),
			Disease:    r.DetectedDisease,
			Confidence: FormatConfidence(r.ConfidenceScore),
			Vitamins:   r.VitaminData,
		})
	}

	return execute("reports", v)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s fragment: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template.
}
