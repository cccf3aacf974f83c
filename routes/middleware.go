/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"io/fs"
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

// Names under which the page script sends the CSRF token. The template reads
// them from the data map, so the server and the script cannot drift apart.
const (
	CSRFFormField = "_csrf"
	CSRFHeader    = "X-CSRF-Token"
)

// CSRFOptions configures csrf.Csrfer with the names the page script uses.
func CSRFOptions(secret string) csrf.Options {
	return csrf.Options{
		Secret: secret,
		Form:   CSRFFormField,
		Header: CSRFHeader,
	}
}

// ExposeCSRF hands the token and where to send it to the page template.
func ExposeCSRF() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
		data["csrf_form"] = CSRFFormField
		data["csrf_header"] = CSRFHeader
	}
}

// privacyHeaders go on every response; pages and API replies carry patient
// details that must not be framed, indexed or leaked through Referer.
var privacyHeaders = map[string]string{
	"X-Robots-Tag":           "noindex, nofollow, noarchive, nosnippet",
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
}

const (
	assetCacheControl   = "no-cache"
	patientCacheControl = "no-store, max-age=0"
)

// PrivacyHeaders sets privacy headers on every response. Files found in
// assets may be cached but are revalidated; everything else, whatever the
// method, is marked no-store.
func PrivacyHeaders(assets fs.FS) flamego.Handler {
	assetPaths := listAssets(assets)

	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		for name, value := range privacyHeaders {
			header.Set(name, value)
		}

		req := c.Request()
		isAsset := (req.Method == http.MethodGet || req.Method == http.MethodHead) && assetPaths[req.URL.Path]

		if isAsset {
			header.Set("Cache-Control", assetCacheControl)
		} else {
			header.Set("Cache-Control", patientCacheControl)
			header.Set("Pragma", "no-cache")
		}

		c.Next()
	}
}

func listAssets(assets fs.FS) map[string]bool {
	paths := make(map[string]bool)
	if assets == nil {
		return paths
	}

	err := fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			paths["/"+path] = true
		}

		return nil
	})
	if err != nil {
		logger.Warn("Error listing static assets", "error", err)
	}

	return paths
}
