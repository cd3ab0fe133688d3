// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtractSpreadsheet returns the cell values of every worksheet, row by row.
// The cells of a row are joined with a space and each row is followed by a
// space. Empty cells contribute an empty string.
func ExtractSpreadsheet(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, " "))
			b.WriteString(" ")
		}
	}
	return b.String(), nil
}
