// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strconv"
	"strings"

	"lexiscan/internal/formatters"
	"lexiscan/internal/formatters/shared"
	"lexiscan/internal/frequency"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "word,count rows for spreadsheet import, most frequent first"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(table frequency.Table, options formatters.FormatterOptions) (string, error) {
	headers := []string{"word", "count"}
	if options.Verbose {
		headers = append(headers, "share")
	}
	rows := []string{strings.Join(headers, ",")}

	total := table.Total()
	for _, entry := range shared.SelectEntries(table, options) {
		row := []string{
			f.escapeCSVField(entry.Word),
			strconv.Itoa(entry.Count),
		}
		if options.Verbose {
			share := 0.0
			if total > 0 {
				share = float64(entry.Count) / float64(total)
			}
			row = append(row, strconv.FormatFloat(share, 'f', 4, 64))
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, "\n") + "\n", nil
}

// escapeCSVField quotes a field when needed and neutralizes spreadsheet formulas
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// sanitizeFormulaInjection prefixes fields that a spreadsheet would evaluate
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}
	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
