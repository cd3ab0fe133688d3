// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lexiscan/internal/formatters"
	"lexiscan/internal/formatters/shared"
	"lexiscan/internal/frequency"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "A single JSON object mapping each word to its count"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// verboseResponse adds the scan summary around the word mapping
type verboseResponse struct {
	shared.Report
	Words json.RawMessage `json:"words"`
}

func (f *Formatter) Format(table frequency.Table, options formatters.FormatterOptions) (string, error) {
	words, err := shared.WordsJSON(shared.SelectEntries(table, options))
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}

	if options.Verbose && options.Summary != nil {
		data, err := json.MarshalIndent(verboseResponse{
			Report: shared.NewReport(table, options),
			Words:  words,
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error formatting JSON: %w", err)
		}
		return string(data), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, words, "", "  "); err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return buf.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
