/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/vitascan/model"
)

// UpsertPatientInput holds the identifiers submitted with an analysis.
type UpsertPatientInput struct {
	ID      string
	Name    string
	Address string
	Phone   string
}

// UpsertPatient creates the patient or replaces its details.
func UpsertPatient(ctx context.Context, input UpsertPatientInput) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if strings.TrimSpace(input.ID) == "" {
		return errPatientIDRequired
	}

	if strings.TrimSpace(input.Name) == "" {
		return errPatientNameRequired
	}

	query := `
		INSERT INTO patients (id, name, address, phone)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    address = EXCLUDED.address,
		    phone = EXCLUDED.phone,
		    updated_at = NOW()
	`

	if _, err := pool.Exec(ctx, query, input.ID, input.Name, input.Address, input.Phone); err != nil {
		return fmt.Errorf("failed to upsert patient: %w", err)
	}

	return nil
}

// GetPatient returns a patient by ID, or ErrPatientNotFound.
func GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var (
		patient model.Patient
		address *string
		phone   *string
	)

	err := pool.QueryRow(ctx, `SELECT id, name, address, phone FROM patients WHERE id = $1`, id).
		Scan(&patient.ID, &patient.Name, &address, &phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}

		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if address != nil {
		patient.Address = *address
	}

	if phone != nil {
		patient.Phone = *phone
	}

	return &patient, nil
}
