/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir is the directory analysed images are kept in.
type UploadDir string

// Save writes an uploaded image as "{uuid}_{basename}" and returns its path.
func (d UploadDir) Save(filename string, data []byte) (string, error) {
	dir := string(d)
	if dir == "" {
		dir = "uploads"
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	target := filepath.Join(dir, uuid.NewString()+"_"+uploadBaseName(filename))

	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return target, nil
}

func uploadBaseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))

	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}

		return r
	}, name)

	if name == "" || name == "." || name == "/" || name == ".." {
		return "image"
	}

	return name
}
