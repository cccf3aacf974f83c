// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/vitascan/client"
	"github.com/humaidq/vitascan/db"
	"github.com/humaidq/vitascan/model"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

type templateStub struct {
	called bool
	status int
	name   string
}

func (s *templateStub) HTML(status int, name string) {
	s.called = true
	s.status = status
	s.name = name
}

type fakeStore struct {
	mu       sync.Mutex
	patients map[string]model.Patient
	reports  map[string][]model.Report
	created  []db.CreateReportInput
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		patients: make(map[string]model.Patient),
		reports:  make(map[string][]model.Report),
	}
}

func (s *fakeStore) UpsertPatient(_ context.Context, input db.UpsertPatientInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.patients[input.ID] = model.Patient{ID: input.ID, Name: input.Name, Address: input.Address, Phone: input.Phone}

	return nil
}

func (s *fakeStore) GetPatient(_ context.Context, id string) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	patient, ok := s.patients[id]
	if !ok {
		return nil, db.ErrPatientNotFound
	}

	return &patient, nil
}

func (s *fakeStore) CreateReport(_ context.Context, input db.CreateReportInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}

	s.created = append(s.created, input)

	return "report-1", nil
}

func (s *fakeStore) ListPatientReports(_ context.Context, patientID string) ([]model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	return s.reports[patientID], nil
}

type fakeAnalyzer struct {
	result      *model.AnalysisResult
	err         error
	contentType string
	image       []byte
}

func (a *fakeAnalyzer) Analyze(_ context.Context, image []byte, contentType string) (*model.AnalysisResult, error) {
	a.image = image
	a.contentType = contentType

	if a.err != nil {
		return nil, a.err
	}

	return a.result, nil
}

type fakeBackend struct {
	result      *model.AnalysisResult
	analyzeErr  error
	reports     *model.PatientReports
	reportsErr  error
	submissions []client.Submission
	lookups     []string
}

func (b *fakeBackend) Analyze(_ context.Context, sub client.Submission) (*model.AnalysisResult, error) {
	b.submissions = append(b.submissions, sub)

	if b.analyzeErr != nil {
		return nil, b.analyzeErr
	}

	return b.result, nil
}

func (b *fakeBackend) PatientReports(_ context.Context, patientID string) (*model.PatientReports, error) {
	b.lookups = append(b.lookups, patientID)

	if b.reportsErr != nil {
		return nil, b.reportsErr
	}

	return b.reports, nil
}

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		DetectedDisease: "Eczema",
		ConfidenceScore: 0.873,
		VitaminDeficiencies: []model.VitaminFinding{
			{Vitamin: "Vitamin D", Reason: "Low sun exposure", RecommendedFoods: []string{"Salmon", "Eggs"}},
		},
	}
}

// multipartBody builds an upload form. An empty filename omits the file part.
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}

	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}

		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

// newUITestApp wires the UI handlers with fakes in place of the session,
// template engine and backend. Dates are shown in UTC.
func newUITestApp(backend Backend, tpl *templateStub, data template.Data, s *testSession, flash session.Flash) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(flash, (*session.Flash)(nil))
		c.MapTo(tpl, (*template.Template)(nil))
		c.MapTo(backend, (*Backend)(nil))
		c.Map(data)
		c.Map(DisplayOptions{Location: time.UTC})
		c.Next()
	})

	f.Get("/", Home)
	f.Post("/ui/preview", Preview)
	f.Post("/ui/analyze", SubmitAnalysis)
	f.Get("/ui/reports", LookupReports)

	return f
}

func newAPITestApp(store ReportStore, analyzer ImageAnalyzer, uploads UploadDir) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(store, (*ReportStore)(nil))
		c.MapTo(analyzer, (*ImageAnalyzer)(nil))
		c.Map(uploads)
		c.Next()
	})

	f.Post("/api/analyze", AnalyzeImage)
	f.Get("/api/patient/{id}/reports", PatientReports)

	return f
}

func serve(f *flamego.Flame, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}
