// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"strings"
	"testing"
	"time"

	"github.com/humaidq/vitascan/model"
)

func TestRenderResultText(t *testing.T) {
	t.Parallel()

	out := RenderResultText(anemiaResult())
	for _, want := range []string{"Anemia", "Confidence: 82.0%", "B12", "Pale skin", "liver", "eggs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderPatientReportsText(t *testing.T) {
	t.Parallel()

	empty := RenderPatientReportsText(model.PatientReports{Patient: model.Patient{ID: "1"}}, time.UTC)
	if empty != NoReportsMessage {
		t.Fatalf("unexpected empty output %q", empty)
	}

	out := RenderPatientReportsText(model.PatientReports{
		Patient: model.Patient{ID: "1", Name: "Sara"},
		Reports: []model.Report{{
			DetectedDisease: "Vitiligo",
			ConfidenceScore: 0.75,
			CreatedAt:       model.NewTimestamp(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)),
		}},
	}, time.UTC)

	for _, want := range []string{"Sara", "N/A", "Vitiligo", "75.0%", "6/1/2025, 8:00:00 AM"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderErrorText(t *testing.T) {
	t.Parallel()

	if out := RenderErrorText("model unavailable"); !strings.Contains(out, "model unavailable") {
		t.Fatalf("unexpected error text %q", out)
	}
}
