/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/humaidq/vitascan/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	diseaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	foodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// RenderResultText renders an analysis result for a terminal.
func RenderResultText(result model.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(headingStyle.Render("Detected Condition") + "\n")
	sb.WriteString(diseaseStyle.Render(result.DetectedDisease) + "\n")
	sb.WriteString("Confidence: " + FormatConfidence(result.ConfidenceScore) + "\n\n")
	sb.WriteString(headingStyle.Render("Possible Vitamin Deficiencies") + "\n")
	writeFindingsText(&sb, result.VitaminDeficiencies)
	sb.WriteString("\n" + noteStyle.Render(Disclaimer))

	return cardStyle.Render(sb.String())
}

// RenderErrorText renders an error line for a terminal.
func RenderErrorText(message string) string {
	return errorStyle.Render("Error:") + " " + message
}

// RenderPatientReportsText renders a report history for a terminal.
func RenderPatientReportsText(data model.PatientReports, loc *time.Location) string {
	if len(data.Reports) == 0 {
		return NoReportsMessage
	}

	phone := data.Patient.Phone
	if phone == "" {
		phone = phonePlaceholder
	}

	var sb strings.Builder

	sb.WriteString(cardStyle.Render(
		headingStyle.Render("Patient Information") + "\n" +
			"Name:  " + data.Patient.Name + "\n" +
			"ID:    " + data.Patient.ID + "\n" +
			"Phone: " + phone,
	))
	sb.WriteString("\n")

	for _, r := range data.Reports {
		var card strings.Builder

		card.WriteString("Date: " + FormatReportDate(r.CreatedAt, loc) + "\n")
		card.WriteString(diseaseStyle.Render(r.DetectedDisease) + "\n")
		card.WriteString("Confidence: " + FormatConfidence(r.ConfidenceScore) + "\n")
		writeFindingsText(&card, r.VitaminData)

		sb.WriteString(cardStyle.Render(strings.TrimRight(card.String(), "\n")))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeFindingsText(sb *strings.Builder, findings []model.VitaminFinding) {
	for _, f := range findings {
		foods := make([]string, 0, len(f.RecommendedFoods))
		for _, food := range f.RecommendedFoods {
			foods = append(foods, foodStyle.Render(food))
		}

		sb.WriteString("• " + f.Vitamin + ": " + f.Reason + "\n")
		if len(foods) > 0 {
			sb.WriteString("  " + strings.Join(foods, ", ") + "\n")
		}
	}
}
