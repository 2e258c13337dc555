package batch

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// WriteReport saves per-file results as an xlsx sheet.
func WriteReport(results []FileResult, outputPath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Batch Results")
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Status"
	headerRow.AddCell().Value = "Engines"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Warnings"
	headerRow.AddCell().Value = "Output"
	headerRow.AddCell().Value = "Error"

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().Value = r.Name
		row.AddCell().Value = string(r.Status)
		row.AddCell().Value = strings.Join(r.Engines, ", ")
		row.AddCell().Value = fmt.Sprintf("%.2f", r.Duration.Seconds())
		row.AddCell().Value = strings.Join(r.Warnings, "; ")
		row.AddCell().Value = r.OutputPath
		if r.Err != nil {
			row.AddCell().Value = r.Err.Error()
		} else {
			row.AddCell().Value = ""
		}
	}

	if err := file.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
