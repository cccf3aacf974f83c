// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPreviewDataURISniffsMissingType(t *testing.T) {
	t.Parallel()

	uri := PreviewDataURI(pngHeader, "")
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("expected sniffed png data URI, got %q", uri)
	}
}

func TestPreviewDataURIKeepsDeclaredType(t *testing.T) {
	t.Parallel()

	uri := PreviewDataURI([]byte("hello"), "image/jpeg")
	if uri != "data:image/jpeg;base64,aGVsbG8=" {
		t.Fatalf("unexpected data URI %q", uri)
	}
}

func TestRenderPreviewImage(t *testing.T) {
	t.Parallel()

	out, err := RenderPreview("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "#ZgotmplZ") {
		t.Fatalf("expected rendered html without template sentinel, got %q", html)
	}

	if !strings.Contains(html, `src="data:image/png;base64,aGVsbG8="`) || !strings.Contains(html, `alt="Preview"`) {
		t.Fatalf("unexpected preview html %q", html)
	}
}

func TestRenderPreviewNonImageLoadsBroken(t *testing.T) {
	t.Parallel()

	tests := []string{
		PreviewDataURI([]byte("%PDF-1.4"), "application/pdf"),
		"data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
		"javascript:alert(1)",
	}

	for _, uri := range tests {
		out, err := RenderPreview(uri)
		if err != nil {
			t.Fatalf("RenderPreview(%q): %v", uri, err)
		}

		if !strings.Contains(string(out), `src=""`) {
			t.Errorf("expected empty image source for %q, got %q", uri, out)
		}
	}
}
