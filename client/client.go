/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package client talks to the analysis API: it submits images for analysis
// and fetches patient report histories.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/humaidq/vitascan/logging"
	"github.com/humaidq/vitascan/model"
)

const (
	analyzePath        = "/api/analyze"
	patientReportsPath = "/api/patient/%s/reports"

	// ImageField is the multipart field carrying the uploaded image.
	ImageField = "image"
)

var logger = logging.Logger(logging.SourceClient)

// Client calls the analysis API. It never retries; each call issues exactly
// one request.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout bounds every request. The default is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api base URL: %w", err)
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	for _, opt := range options {
		opt(rc)
	}

	return &Client{http: rc}, nil
}

// Submission is one analysis request.
type Submission struct {
	PatientID string
	Name      string
	Address   string
	Phone     string
	ImageName string
	Image     io.Reader
}

// Analyze uploads the submission and returns the analysis result. A failure
// reported in the response body is returned as *ServerError; anything else
// (transport, decoding) is returned wrapped.
func (c *Client) Analyze(ctx context.Context, sub Submission) (*model.AnalysisResult, error) {
	if sub.Image == nil {
		return nil, errMissingImage
	}

	imageName := sub.ImageName
	if imageName == "" {
		imageName = "image"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"patient_id": sub.PatientID,
			"name":       sub.Name,
			"address":    sub.Address,
			"phone":      sub.Phone,
		}).
		SetFileReader(ImageField, imageName, sub.Image).
		Post(analyzePath)
	if err != nil {
		return nil, fmt.Errorf("failed to submit analysis: %w", err)
	}

	var envelope model.AnalyzeResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response (status %d): %w", resp.StatusCode(), err)
	}

	if envelope.Error != "" {
		logger.Debug("Analysis rejected by server", "patient_id", sub.PatientID, "status", resp.StatusCode(), "error", envelope.Error)
		return nil, &ServerError{Message: envelope.Error, Reason: envelope.Reason}
	}

	if envelope.Result == nil {
		return nil, fmt.Errorf("%w (status %d)", errEmptyAnalysis, resp.StatusCode())
	}

	return envelope.Result, nil
}

// PatientReports fetches the report history of a patient. An empty ID fails
// with ErrEmptyPatientID without touching the network; a 404 yields
// ErrPatientNotFound whatever the body says.
func (c *Client) PatientReports(ctx context.Context, patientID string) (*model.PatientReports, error) {
	if patientID == "" {
		return nil, ErrEmptyPatientID
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf(patientReportsPath, url.PathEscape(patientID)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient reports: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrPatientNotFound
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d %s", errUnexpectedStatus, resp.StatusCode(), errorMessage(resp.Body()))
	}

	var data model.PatientReports
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to decode patient reports: %w", err)
	}

	if data.Reports == nil {
		data.Reports = []model.Report{}
	}

	return &data, nil
}

func errorMessage(body []byte) string {
	var e model.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}

	return strings.TrimSpace(string(body))
}
