/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"context"
	"errors"
	htmltemplate "html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/vitascan/client"
	"github.com/humaidq/vitascan/model"
	"github.com/humaidq/vitascan/view"
)

const (
	indexTemplate = "index"

	// fragmentHeader marks requests issued by the page script; they get an
	// HTML fragment instead of the full page.
	fragmentHeader = "X-Requested-With"
	fragmentValue  = "fetch"

	previewMaxBytes = 10 << 20
)

// Backend is the analysis service the UI talks to.
type Backend interface {
	Analyze(ctx context.Context, sub client.Submission) (*model.AnalysisResult, error)
	PatientReports(ctx context.Context, patientID string) (*model.PatientReports, error)
}

// DisplayOptions controls how the UI presents values to the user.
type DisplayOptions struct {
	// Location is the zone report timestamps are shown in.
	Location *time.Location
}

func (o DisplayOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}

	return o.Location
}

// submittedForm echoes the patient fields back into a re-rendered page.
type submittedForm struct {
	PatientID string
	Name      string
	Address   string
	Phone     string
}

func isFragmentRequest(c flamego.Context) bool {
	return strings.EqualFold(c.Request().Header.Get(fragmentHeader), fragmentValue)
}

func writeHTML(c flamego.Context, status int, fragment htmltemplate.HTML) {
	c.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.ResponseWriter().WriteHeader(status)

	if _, err := io.WriteString(c.ResponseWriter(), string(fragment)); err != nil {
		logger.Error("Error writing HTML fragment", "error", err)
	}
}

// pageDefaults are the page values every render must define.
var pageDefaults = map[string]any{
	"PreviewHTML": htmltemplate.HTML(""),
	"ResultHTML":  htmltemplate.HTML(""),
	"ReportsHTML": htmltemplate.HTML(""),
	"LookupID":    "",
}

func renderPage(t template.Template, data template.Data, status int, tab view.Tab) {
	setSiteTitle(data)

	for key, value := range pageDefaults {
		if _, ok := data[key]; !ok {
			data[key] = value
		}
	}

	data["Tabs"] = view.Activate(tab)
	t.HTML(status, indexTemplate)
}

// Home renders the page with the tab named by the "tab" query value active.
func Home(c flamego.Context, t template.Template, data template.Data, flash session.Flash) {
	setFlashData(data, flash)
	renderPage(t, data, http.StatusOK, view.ParseTab(c.Query("tab")))
}

// Preview returns an <img> fragment for the uploaded image, or 204 when no
// file was chosen.
func Preview(c flamego.Context) {
	req := c.Request()

	if err := req.ParseMultipartForm(previewMaxBytes); err != nil {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
		return
	}

	file, _, err := req.FormFile("image")
	if err != nil {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing preview upload", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
		return
	}

	fragment, err := view.RenderPreview(view.PreviewDataURI(data, ""))
	if err != nil {
		logger.Error("Error rendering preview", "error", err)
		c.ResponseWriter().WriteHeader(http.StatusInternalServerError)

		return
	}

	writeHTML(c, http.StatusOK, fragment)
}

// SubmitAnalysis forwards the upload form to the backend and renders the
// outcome into the result area.
func SubmitAnalysis(c flamego.Context, backend Backend, t template.Template, data template.Data) {
	req := c.Request()

	form := submittedForm{}

	var (
		image     []byte
		imageName string
		fragment  htmltemplate.HTML
		err       error
	)

	if err = req.ParseMultipartForm(analyzeUploadMaxBytes); err != nil {
		fragment, err = view.RenderError(analysisErrorPrefix + msgUploadFormInvalid)
	} else {
		form = submittedForm{
			PatientID: req.FormValue("patient_id"),
			Name:      req.FormValue("name"),
			Address:   req.FormValue("address"),
			Phone:     req.FormValue("phone"),
		}

		image, imageName = readUpload(req.Request)
		fragment, err = analyze(req.Context(), backend, form, image, imageName)
	}

	if err != nil {
		logger.Error("Error rendering analysis outcome", "error", err)
		writeHTML(c, http.StatusInternalServerError, "")

		return
	}

	if isFragmentRequest(c) {
		writeHTML(c, http.StatusOK, fragment)
		return
	}

	data["Form"] = form
	data["ResultHTML"] = fragment
	data["ResultVisible"] = true

	if len(image) > 0 {
		if preview, err := view.RenderPreview(view.PreviewDataURI(image, "")); err == nil {
			data["PreviewHTML"] = preview
		}
	}

	renderPage(t, data, http.StatusOK, view.TabUpload)
}

func readUpload(req *http.Request) ([]byte, string) {
	file, header, err := req.FormFile("image")
	if err != nil {
		return nil, ""
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing analysis upload", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("Error reading analysis upload", "error", err)
		return nil, ""
	}

	return data, header.Filename
}

// analyze calls the backend and renders whichever fragment the outcome
// calls for. The returned error is only set when rendering itself fails.
func analyze(ctx context.Context, backend Backend, form submittedForm, image []byte, imageName string) (htmltemplate.HTML, error) {
	sub := client.Submission{
		PatientID: form.PatientID,
		Name:      form.Name,
		Address:   form.Address,
		Phone:     form.Phone,
		ImageName: imageName,
	}

	if image != nil {
		sub.Image = bytes.NewReader(image)
	}

	result, err := backend.Analyze(ctx, sub)
	if err == nil {
		return view.RenderResult(*result)
	}

	var serverErr *client.ServerError
	if errors.As(err, &serverErr) {
		logger.Info("Analysis rejected", "patient_id", form.PatientID, "error", serverErr.Message, "reason", serverErr.Reason)
		return view.RenderError(serverErr.Message)
	}

	logger.Error("Analysis request failed", "patient_id", form.PatientID, "error", err)

	return view.RenderError(analysisErrorPrefix + err.Error())
}

// LookupReports loads a patient's report history from the backend.
func LookupReports(c flamego.Context, s session.Session, backend Backend, opts DisplayOptions, t template.Template, data template.Data) {
	patientID := strings.TrimSpace(c.Query("patient_id"))

	if patientID == "" {
		if isFragmentRequest(c) {
			fragment, err := view.RenderWarning(view.MissingPatientIDPrompt)
			if err != nil {
				logger.Error("Error rendering warning", "error", err)
			}

			writeHTML(c, http.StatusBadRequest, fragment)

			return
		}

		SetWarningFlash(s, view.MissingPatientIDPrompt)
		c.Redirect("/?tab="+url.QueryEscape(string(view.TabLookup)), http.StatusSeeOther)

		return
	}

	reports, err := backend.PatientReports(c.Request().Context(), patientID)

	var fragment htmltemplate.HTML

	switch {
	case errors.Is(err, client.ErrPatientNotFound):
		fragment, err = view.RenderNotice(view.PatientNotFoundMessage)
	case err != nil:
		logger.Error("Error loading reports", "patient_id", patientID, "error", err)
		fragment, err = view.RenderNotice(lookupErrorPrefix + err.Error())
	default:
		fragment, err = view.RenderPatientReports(*reports, opts.location())
		if err == nil && !isFragmentRequest(c) && len(reports.Reports) > 0 {
			chart, chartErr := view.RenderConfidenceChart(reports.Reports, opts.location())
			if chartErr != nil {
				logger.Warn("Error rendering confidence chart", "patient_id", patientID, "error", chartErr)
			} else {
				data["ChartHTML"] = chart
			}
		}
	}

	if err != nil {
		logger.Error("Error rendering reports", "patient_id", patientID, "error", err)
		writeHTML(c, http.StatusInternalServerError, "")

		return
	}

	if isFragmentRequest(c) {
		writeHTML(c, http.StatusOK, fragment)
		return
	}

	data["LookupID"] = patientID
	data["ReportsHTML"] = fragment

	renderPage(t, data, http.StatusOK, view.TabLookup)
}
