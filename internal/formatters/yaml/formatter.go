// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"lexiscan/internal/formatters"
	"lexiscan/internal/formatters/shared"
	"lexiscan/internal/frequency"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML mapping of words to counts, same structure as JSON"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

type verboseResponse struct {
	shared.Report `yaml:",inline"`
	Words         *yaml.Node `yaml:"words"`
}

func (f *Formatter) Format(table frequency.Table, options formatters.FormatterOptions) (string, error) {
	words := shared.WordsNode(shared.SelectEntries(table, options))

	var value interface{} = words
	if options.Verbose && options.Summary != nil {
		value = verboseResponse{
			Report: shared.NewReport(table, options),
			Words:  words,
		}
	}

	yamlData, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}
	return string(yamlData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
