/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package view

import (
	"bytes"
	"html/template"
	"math"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/vitascan/model"
)

const chartDateLayout = "Jan 2, 2006 15:04"

// RenderConfidenceChart draws the confidence of each report over time,
// oldest first. It returns an empty fragment when there are no reports.
func RenderConfidenceChart(reports []model.Report, loc *time.Location) (template.HTML, error) {
	if len(reports) == 0 {
		return "", nil
	}

	if loc == nil {
		loc = time.Local
	}

	sorted := make([]model.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt.Time)
	})

	xAxis := make([]string, 0, len(sorted))
	yData := make([]opts.LineData, 0, len(sorted))

	for _, r := range sorted {
		xAxis = append(xAxis, r.CreatedAt.In(loc).Format(chartDateLayout))
		yData = append(yData, opts.LineData{
			Value: math.Round(r.ConfidenceScore*1000) / 10,
			Name:  r.DetectedDisease,
		})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Confidence history",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "%",
			Min:  0,
			Max:  100,
		}),
	)

	line.SetXAxis(xAxis).
		AddSeries("Confidence", yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
			}),
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil //nolint:gosec // generated by go-echarts.
}
