/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitascan/client"
	"github.com/humaidq/vitascan/model"
	"github.com/humaidq/vitascan/view"
)

var apiURLFlag = &cli.StringFlag{
	Name:    "api-url",
	Value:   "http://127.0.0.1:8000",
	Sources: cli.EnvVars("VITASCAN_API_URL"),
	Usage:   "base URL of the analysis API",
}

var apiTimeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Usage: "request timeout (0 waits indefinitely)",
}

var CmdAnalyze = &cli.Command{
	Name:  "analyze",
	Usage: "Submit an image for analysis and print the result",
	Flags: []cli.Flag{
		apiURLFlag,
		apiTimeoutFlag,
		&cli.StringFlag{Name: "patient-id", Usage: "patient identifier", Required: true},
		&cli.StringFlag{Name: "name", Usage: "patient name", Required: true},
		&cli.StringFlag{Name: "address", Usage: "patient address"},
		&cli.StringFlag{Name: "phone", Usage: "patient phone number"},
		&cli.StringFlag{Name: "image", Usage: "path to the image file"},
	},
	Action: analyze,
}

func newAPIClient(cmd *cli.Command) (*client.Client, error) {
	var options []client.Option
	if timeout := cmd.Duration("timeout"); timeout > 0 {
		options = append(options, client.WithTimeout(timeout))
	}

	return client.New(cmd.String("api-url"), options...)
}

func analyze(ctx context.Context, cmd *cli.Command) error {
	imagePath := cmd.String("image")
	if imagePath == "" {
		return errImageFlagRequired
	}

	c, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			appLogger.Warn("Failed to close image", "path", imagePath, "error", err)
		}
	}()

	result, err := c.Analyze(ctx, client.Submission{
		PatientID: cmd.String("patient-id"),
		Name:      cmd.String("name"),
		Address:   cmd.String("address"),
		Phone:     cmd.String("phone"),
		ImageName: filepath.Base(imagePath),
		Image:     file,
	})

	return printAnalysis(cmd.Root().Writer, result, err)
}

// printAnalysis writes the outcome the way the web UI shows it. A server
// rejection prints only its message; other failures get the generic prefix.
func printAnalysis(w io.Writer, result *model.AnalysisResult, err error) error {
	if err == nil {
		_, werr := fmt.Fprintln(w, view.RenderResultText(*result))
		return werr
	}

	var serverErr *client.ServerError
	if errors.As(err, &serverErr) {
		fmt.Fprintln(w, view.RenderErrorText(serverErr.Message))
	} else {
		fmt.Fprintln(w, view.RenderErrorText("An error occurred during analysis: "+err.Error()))
	}

	return fmt.Errorf("%w: %w", errAnalysisFailed, err)
}
