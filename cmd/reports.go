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
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitascan/client"
	"github.com/humaidq/vitascan/model"
	"github.com/humaidq/vitascan/view"
)

var CmdReports = &cli.Command{
	Name:      "reports",
	Usage:     "Print a patient's report history",
	ArgsUsage: "<patient-id>",
	Flags: []cli.Flag{
		apiURLFlag,
		apiTimeoutFlag,
		&cli.StringFlag{
			Name:    "timezone",
			Sources: cli.EnvVars("TZ"),
			Usage:   "IANA zone report dates are shown in (defaults to the local zone)",
		},
	},
	Action: reports,
}

func reports(ctx context.Context, cmd *cli.Command) error {
	patientID := strings.TrimSpace(cmd.Args().First())
	if patientID == "" {
		return errPatientIDArgRequired
	}

	loc, err := loadLocation(cmd.String("timezone"))
	if err != nil {
		return err
	}

	c, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	data, err := c.PatientReports(ctx, patientID)

	return printReports(cmd.Root().Writer, data, loc, err)
}

func printReports(w io.Writer, data *model.PatientReports, loc *time.Location, err error) error {
	switch {
	case errors.Is(err, client.ErrPatientNotFound):
		fmt.Fprintln(w, view.RenderErrorText(view.PatientNotFoundMessage))
		return err
	case err != nil:
		fmt.Fprintln(w, view.RenderErrorText("Error loading reports: "+err.Error()))
		return err
	}

	_, err = fmt.Fprintln(w, view.RenderPatientReportsText(*data, loc))

	return err
}
