/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitascan/analysis"
	"github.com/humaidq/vitascan/db"
	"github.com/humaidq/vitascan/model"
)

// analyzeUploadMaxBytes caps the multipart body of an analysis request.
const analyzeUploadMaxBytes = 10 << 20

// ReportStore persists patients and their analysis reports.
type ReportStore interface {
	UpsertPatient(ctx context.Context, input db.UpsertPatientInput) error
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	CreateReport(ctx context.Context, input db.CreateReportInput) (string, error)
	ListPatientReports(ctx context.Context, patientID string) ([]model.Report, error)
}

// ImageAnalyzer turns an image into a diagnosis.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, image []byte, contentType string) (*model.AnalysisResult, error)
}

// AnalyzeImage handles POST /api/analyze.
func AnalyzeImage(c flamego.Context, store ReportStore, analyzer ImageAnalyzer, uploads UploadDir) {
	req := c.Request()

	if err := req.ParseMultipartForm(analyzeUploadMaxBytes); err != nil {
		logger.Warn("Error parsing analysis form", "error", err)
		writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: msgUploadFormInvalid})

		return
	}

	patient := db.UpsertPatientInput{
		ID:      strings.TrimSpace(req.FormValue("patient_id")),
		Name:    strings.TrimSpace(req.FormValue("name")),
		Address: strings.TrimSpace(req.FormValue("address")),
		Phone:   strings.TrimSpace(req.FormValue("phone")),
	}

	if patient.ID == "" || patient.Name == "" {
		writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: msgPatientFieldsEmpty})
		return
	}

	// Lookups address the patient as a single path segment.
	if strings.Contains(patient.ID, "/") {
		writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: msgPatientIDSlash})
		return
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: msgImageRequired})
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing analysis upload", "error", err)
		}
	}()

	image, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Error reading analysis upload", "error", err)
		writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: msgUploadFormInvalid})

		return
	}

	ctx := req.Context()

	if err := store.UpsertPatient(ctx, patient); err != nil {
		logger.Error("Error saving patient", "patient_id", patient.ID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.AnalyzeResponse{Error: msgInternalError})

		return
	}

	imagePath, err := uploads.Save(header.Filename, image)
	if err != nil {
		logger.Error("Error storing upload", "patient_id", patient.ID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.AnalyzeResponse{Error: msgInternalError})

		return
	}

	logger.Info("Analyzing image", "patient_id", patient.ID, "filename", header.Filename, "bytes", len(image))

	result, err := analyzer.Analyze(ctx, image, header.Header.Get("Content-Type"))
	if err != nil {
		var rejected *analysis.RejectedError
		if errors.As(err, &rejected) {
			writeJSON(c, http.StatusBadRequest, model.AnalyzeResponse{Error: rejected.Message, Reason: rejected.Reason})
			return
		}

		logger.Error("Error analyzing image", "patient_id", patient.ID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.AnalyzeResponse{Error: err.Error()})

		return
	}

	reportID, err := store.CreateReport(ctx, db.CreateReportInput{
		PatientID: patient.ID,
		ImagePath: imagePath,
		Result:    *result,
	})
	if err != nil {
		logger.Error("Error saving report", "patient_id", patient.ID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.AnalyzeResponse{Error: msgInternalError})

		return
	}

	logger.Info("Stored report", "patient_id", patient.ID, "report_id", reportID, "condition", result.DetectedDisease)

	writeJSON(c, http.StatusOK, model.AnalyzeResponse{
		Success:  true,
		ReportID: reportID,
		Result:   result,
	})
}

// PatientReports handles GET /api/patient/{id}/reports.
func PatientReports(c flamego.Context, store ReportStore) {
	ctx := c.Request().Context()
	patientID := c.Param("id")

	patient, err := store.GetPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, db.ErrPatientNotFound) {
			writeJSON(c, http.StatusNotFound, model.ErrorResponse{Error: msgPatientNotFound})
			return
		}

		logger.Error("Error fetching patient", "patient_id", patientID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.ErrorResponse{Error: msgInternalError})

		return
	}

	reports, err := store.ListPatientReports(ctx, patientID)
	if err != nil {
		logger.Error("Error fetching reports", "patient_id", patientID, "error", err)
		writeJSON(c, http.StatusInternalServerError, model.ErrorResponse{Error: msgInternalError})

		return
	}

	if reports == nil {
		reports = []model.Report{}
	}

	writeJSON(c, http.StatusOK, model.PatientReports{Patient: *patient, Reports: reports})
}

func writeJSON(c flamego.Context, status int, payload any) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(payload); err != nil {
		logger.Error("Error encoding JSON response", "error", err)
	}
}
