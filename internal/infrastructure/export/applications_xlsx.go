// Package export renders application listings as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"job-portal/internal/domain/application"

	"github.com/xuri/excelize/v2"
)

const (
	ApplicationsSheet = "Applications"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var applicationHeaders = []string{
	"Application ID", "Applied At", "Status",
	"Job ID", "Job Title", "Job Location",
	"Company ID", "Company",
	"Applicant ID", "Applicant Name", "Applicant Email", "Resume URL",
}

var applicationColumnWidths = []float64{14, 22, 12, 10, 30, 20, 12, 25, 13, 25, 30, 40}

// ApplicationsXLSX writes one row per application under a frozen header row.
func ApplicationsXLSX(rows []application.Detail) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(ApplicationsSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(applicationHeaders))
	for i, h := range applicationHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ApplicationsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(applicationHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ApplicationsSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, w := range applicationColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(ApplicationsSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	for i, d := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			d.ID, d.AppliedAt.UTC().Format(time.RFC3339), string(d.Status),
			d.JobID, d.JobTitle, d.JobLocation,
			d.CompanyID, d.CompanyName,
			d.ApplicantID, d.ApplicantName, deref(d.ApplicantEmail), deref(d.ResumeURL),
		}
		if err := f.SetSheetRow(ApplicationsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(ApplicationsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
