// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"bytes"
	"encoding/json"
	"strconv"

	"lexiscan/internal/core"
	"lexiscan/internal/formatters"
	"lexiscan/internal/frequency"

	"gopkg.in/yaml.v3"
)

// SelectEntries returns the entries to output, most frequent first, limited
// to options.Top when set
func SelectEntries(table frequency.Table, options formatters.FormatterOptions) []frequency.Entry {
	return table.Top(options.Top)
}

// WordsJSON renders entries as one compact JSON object that keeps the entry
// order
func WordsJSON(entries []frequency.Entry) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WordsNode builds a YAML mapping node that keeps the entry order
func WordsNode(entries []frequency.Entry) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(entries) == 0 {
		node.Style = yaml.FlowStyle
	}
	for _, entry := range entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Word}
		value := &yaml.Node{}
		if err := value.Encode(entry.Count); err != nil {
			continue
		}
		node.Content = append(node.Content, key, value)
	}
	return node
}

// Report is the verbose JSON/YAML structure: the scan summary next to the
// word mapping
type Report struct {
	Summary     *core.Summary `json:"summary" yaml:"summary"`
	Distinct    int           `json:"distinct_words" yaml:"distinct_words"`
	Occurrences int           `json:"occurrences" yaml:"occurrences"`
}

// NewReport summarizes a table for verbose output
func NewReport(table frequency.Table, options formatters.FormatterOptions) Report {
	return Report{
		Summary:     options.Summary,
		Distinct:    len(table),
		Occurrences: table.Total(),
	}
}
