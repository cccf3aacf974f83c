// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/humaidq/vitascan/analysis"
	"github.com/humaidq/vitascan/model"
)

var errTestModelDown = errors.New("model endpoint unavailable")

func decodeAnalyzeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.AnalyzeResponse {
	t.Helper()

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}

	var resp model.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}

	return resp
}

func TestAnalyzeImageValidatesInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fields   map[string]string
		filename string
		want     string
	}{
		{
			name:     "missing patient id",
			fields:   map[string]string{"name": "Alice"},
			filename: "skin.png",
			want:     msgPatientFieldsEmpty,
		},
		{
			name:     "missing name",
			fields:   map[string]string{"patient_id": "P1"},
			filename: "skin.png",
			want:     msgPatientFieldsEmpty,
		},
		{
			name:     "slash in patient id",
			fields:   map[string]string{"patient_id": "ward/7", "name": "Alice"},
			filename: "skin.png",
			want:     msgPatientIDSlash,
		},
		{
			name:   "missing image",
			fields: map[string]string{"patient_id": "P1", "name": "Alice"},
			want:   msgImageRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			analyzer := &fakeAnalyzer{result: sampleResult()}
			f := newAPITestApp(store, analyzer, UploadDir(t.TempDir()))

			body, contentType := multipartBody(t, tt.fields, tt.filename, pngHeader)
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
			req.Header.Set("Content-Type", contentType)

			rec := serve(f, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}

			resp := decodeAnalyzeResponse(t, rec)
			if resp.Error != tt.want {
				t.Fatalf("expected error %q, got %q", tt.want, resp.Error)
			}

			if len(store.patients) != 0 || analyzer.image != nil {
				t.Fatal("expected no side effects for invalid input")
			}
		})
	}
}

func TestAnalyzeImageStoresReport(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	analyzer := &fakeAnalyzer{result: sampleResult()}
	dir := t.TempDir()
	f := newAPITestApp(store, analyzer, UploadDir(dir))

	body, contentType := multipartBody(t, map[string]string{
		"patient_id": "P1",
		"name":       "Alice",
		"phone":      "555-0100",
	}, "skin.png", pngHeader)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(f, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	resp := decodeAnalyzeResponse(t, rec)
	if !resp.Success || resp.ReportID != "report-1" {
		t.Fatalf("unexpected response: %#v", resp)
	}

	if resp.Result == nil || resp.Result.DetectedDisease != "Eczema" {
		t.Fatalf("unexpected result: %#v", resp.Result)
	}

	if got := store.patients["P1"]; got.Name != "Alice" || got.Phone != "555-0100" {
		t.Fatalf("unexpected stored patient: %#v", got)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one stored report, got %d", len(store.created))
	}

	stored := store.created[0]
	if filepath.Dir(stored.ImagePath) != dir || !strings.HasSuffix(stored.ImagePath, "_skin.png") {
		t.Fatalf("unexpected image path %q", stored.ImagePath)
	}

	saved, err := os.ReadFile(stored.ImagePath)
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}

	if string(saved) != string(pngHeader) {
		t.Fatal("saved image does not match upload")
	}

	if string(analyzer.image) != string(pngHeader) {
		t.Fatal("analyzer did not receive the uploaded image")
	}
}

func TestAnalyzeImageRejection(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	analyzer := &fakeAnalyzer{err: &analysis.RejectedError{
		Message: analysis.NotMedicalImageMessage,
		Reason:  "The image shows a landscape.",
	}}
	f := newAPITestApp(store, analyzer, UploadDir(t.TempDir()))

	body, contentType := multipartBody(t, map[string]string{"patient_id": "P1", "name": "Alice"}, "tree.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(f, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	resp := decodeAnalyzeResponse(t, rec)
	if resp.Error != analysis.NotMedicalImageMessage || resp.Reason != "The image shows a landscape." {
		t.Fatalf("unexpected response: %#v", resp)
	}

	if len(store.created) != 0 {
		t.Fatal("expected no report for a rejected image")
	}
}

func TestAnalyzeImageAnalyzerFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	analyzer := &fakeAnalyzer{err: errTestModelDown}
	f := newAPITestApp(store, analyzer, UploadDir(t.TempDir()))

	body, contentType := multipartBody(t, map[string]string{"patient_id": "P1", "name": "Alice"}, "skin.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(f, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}

	resp := decodeAnalyzeResponse(t, rec)
	if resp.Error != errTestModelDown.Error() || resp.Success {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestPatientReportsNotFound(t *testing.T) {
	t.Parallel()

	f := newAPITestApp(newFakeStore(), &fakeAnalyzer{}, UploadDir(t.TempDir()))

	rec := serve(f, httptest.NewRequest(http.MethodGet, "/api/patient/nobody/reports", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Patient not found"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestPatientReportsReturnsHistory(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.patients["P1"] = model.Patient{ID: "P1", Name: "Alice"}
	store.reports["P1"] = []model.Report{
		{ID: "r2", PatientID: "P1", DetectedDisease: "Rash", ConfidenceScore: 0.7},
		{ID: "r1", PatientID: "P1", DetectedDisease: "Acne", ConfidenceScore: 0.9},
	}

	f := newAPITestApp(store, &fakeAnalyzer{}, UploadDir(t.TempDir()))

	rec := serve(f, httptest.NewRequest(http.MethodGet, "/api/patient/P1/reports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp model.PatientReports
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Patient.Name != "Alice" || len(resp.Reports) != 2 || resp.Reports[0].ID != "r2" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestPatientReportsEmptyHistoryIsArray(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.patients["P2"] = model.Patient{ID: "P2", Name: "Bob"}

	f := newAPITestApp(store, &fakeAnalyzer{}, UploadDir(t.TempDir()))

	rec := serve(f, httptest.NewRequest(http.MethodGet, "/api/patient/P2/reports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if !strings.Contains(rec.Body.String(), `"reports":[]`) {
		t.Fatalf("expected empty reports array, got %s", rec.Body.String())
	}
}
