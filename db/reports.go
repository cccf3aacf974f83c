/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/vitascan/model"
)

// CreateReportInput is a finished analysis to persist.
type CreateReportInput struct {
	PatientID string
	ImagePath string
	Result    model.AnalysisResult
}

// CreateReport stores an analysis result and returns the new report ID.
func CreateReport(ctx context.Context, input CreateReportInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	findings := input.Result.VitaminDeficiencies
	if findings == nil {
		findings = []model.VitaminFinding{}
	}

	vitaminData, err := json.Marshal(findings)
	if err != nil {
		return "", fmt.Errorf("failed to encode vitamin data: %w", err)
	}

	id := uuid.NewString()

	query := `
		INSERT INTO reports (id, patient_id, image_path, detected_disease, confidence_score, vitamin_data)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6::jsonb)
	`

	_, err = pool.Exec(ctx, query,
		id, input.PatientID, input.ImagePath,
		input.Result.DetectedDisease, input.Result.ConfidenceScore, string(vitaminData),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	return id, nil
}

// ListPatientReports returns a patient's reports, newest first.
func ListPatientReports(ctx context.Context, patientID string) ([]model.Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id::text, patient_id, COALESCE(image_path, ''), detected_disease, confidence_score, vitamin_data, created_at
		FROM reports
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []model.Report{}

	for rows.Next() {
		var (
			r           model.Report
			vitaminData []byte
			createdAt   time.Time
		)

		if err := rows.Scan(&r.ID, &r.PatientID, &r.ImagePath, &r.DetectedDisease, &r.ConfidenceScore, &vitaminData, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		if err := json.Unmarshal(vitaminData, &r.VitaminData); err != nil {
			return nil, fmt.Errorf("failed to decode vitamin data for report %s: %w", r.ID, err)
		}

		r.CreatedAt = model.NewTimestamp(createdAt)
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// Store exposes the package-level report operations as a value, for callers
// that take their storage as a dependency.
type Store struct{}

// UpsertPatient calls UpsertPatient.
func (Store) UpsertPatient(ctx context.Context, input UpsertPatientInput) error {
	return UpsertPatient(ctx, input)
}

// GetPatient calls GetPatient.
func (Store) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return GetPatient(ctx, id)
}

// CreateReport calls CreateReport.
func (Store) CreateReport(ctx context.Context, input CreateReportInput) (string, error) {
	return CreateReport(ctx, input)
}

// ListPatientReports calls ListPatientReports.
func (Store) ListPatientReports(ctx context.Context, patientID string) ([]model.Report, error) {
	return ListPatientReports(ctx, patientID)
}
