// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages bounds the number of pages read from a single PDF
const maxPDFPages = 500

// ExtractPDF returns the plain text of each page, each followed by a space.
// Pages that fail to decode are skipped; a file with no readable page is an
// error.
func ExtractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	var (
		b         strings.Builder
		readPages int
		lastErr   error
	)
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			lastErr = err
			continue
		}
		readPages++
		b.WriteString(text)
		b.WriteString(" ")
	}

	if readPages == 0 && lastErr != nil {
		return "", fmt.Errorf("no readable pages: %w", lastErr)
	}
	return b.String(), nil
}
