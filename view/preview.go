/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package view

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"
)

var previewImagePrefixes = []string{
	"data:image/png;base64,",
	"data:image/jpeg;base64,",
	"data:image/gif;base64,",
	"data:image/webp;base64,",
}

// PreviewDataURI encodes an uploaded file as a data URI. The content type is
// sniffed when the upload did not declare one.
func PreviewDataURI(data []byte, contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// safeImageURL passes through raster image data URIs and blanks anything
// else, leaving the browser to show a broken image.
func safeImageURL(uri string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(uri))
	for _, prefix := range previewImagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return template.URL(uri) //nolint:gosec // restricted to raster data:image URIs.
		}
	}

	return ""
}

// RenderPreview renders the inline image preview for a data URI.
func RenderPreview(dataURI string) (template.HTML, error) {
	return execute("preview", safeImageURL(dataURI))
}
