/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package templates

import "embed"

// Templates holds the page templates rendered by the web UI.
//
//go:embed *.html
var Templates embed.FS
