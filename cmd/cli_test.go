// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/humaidq/vitascan/client"
	"github.com/humaidq/vitascan/model"
)

var errTestTimeout = errors.New("context deadline exceeded")

func TestPrintAnalysis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  *model.AnalysisResult
		err     error
		want    string
		notWant string
		wantErr bool
	}{
		{
			name:   "result",
			result: &model.AnalysisResult{DetectedDisease: "Psoriasis", ConfidenceScore: 0.66},
			want:   "Confidence: 66.0%",
		},
		{
			name:    "server rejection",
			err:     &client.ServerError{Message: "Uploaded image is not medically relevant.", Reason: "a cat"},
			want:    "Uploaded image is not medically relevant.",
			notWant: "An error occurred during analysis",
			wantErr: true,
		},
		{
			name:    "transport failure",
			err:     errTestTimeout,
			want:    "An error occurred during analysis: context deadline exceeded",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			err := printAnalysis(&out, tt.result, tt.err)
			if (err != nil) != tt.wantErr {
				t.Fatalf("printAnalysis() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr && !errors.Is(err, errAnalysisFailed) {
				t.Fatalf("expected errAnalysisFailed, got %v", err)
			}

			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("expected output to contain %q, got %q", tt.want, out.String())
			}

			if tt.notWant != "" && strings.Contains(out.String(), tt.notWant) {
				t.Fatalf("expected output not to contain %q", tt.notWant)
			}
		})
	}
}

func TestPrintReports(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := printReports(&out, nil, time.UTC, client.ErrPatientNotFound)
	if !errors.Is(err, client.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}

	if !strings.Contains(out.String(), "Patient not found") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()

	data := &model.PatientReports{Patient: model.Patient{ID: "P1", Name: "Omar"}, Reports: []model.Report{}}
	if err := printReports(&out, data, time.UTC, nil); err != nil {
		t.Fatalf("printReports() error = %v", err)
	}

	if !strings.Contains(out.String(), "No reports found for this patient.") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
