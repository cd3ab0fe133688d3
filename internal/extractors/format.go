// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for format names or paths with no extractor
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format is a document format with a dedicated text extractor
type Format int

const (
	// Unknown is the zero value and never has an extractor
	Unknown Format = iota
	// Spreadsheet is an Office Open XML workbook (.xlsx)
	Spreadsheet
	// Presentation is an Office Open XML slide deck (.pptx)
	Presentation
	// WordProcessing is an Office Open XML document (.docx)
	WordProcessing
	// PortableDocument is a PDF file (.pdf); opt-in
	PortableDocument
)

var formatInfo = map[Format]struct {
	name      string
	extension string
	aliases   []string
}{
	Spreadsheet:      {"spreadsheet", ".xlsx", []string{"xlsx", "excel"}},
	Presentation:     {"presentation", ".pptx", []string{"pptx", "powerpoint"}},
	WordProcessing:   {"word-processing", ".docx", []string{"docx", "word"}},
	PortableDocument: {"pdf", ".pdf", []string{"pdf"}},
}

// String returns the format's display name
func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "unknown"
}

// Extension returns the lower-case file extension, including the dot
func (f Format) Extension() string {
	return formatInfo[f].extension
}

// DefaultFormats returns the formats scanned unless configured otherwise
func DefaultFormats() []Format {
	return []Format{Spreadsheet, Presentation, WordProcessing}
}

// AllFormats returns every format with an extractor
func AllFormats() []Format {
	return []Format{Spreadsheet, Presentation, WordProcessing, PortableDocument}
}

// ParseFormat maps a name, alias or extension (xlsx, ".pptx", word, pdf...)
// to a Format
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, format := range AllFormats() {
		info := formatInfo[format]
		if key == info.name || key == info.extension {
			return format, nil
		}
		for _, alias := range info.aliases {
			if key == alias {
				return format, nil
			}
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// ParseFormats parses a list of format names, dropping duplicates
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var formats []Format
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		format, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[format] {
			seen[format] = true
			formats = append(formats, format)
		}
	}
	return formats, nil
}

// FormatOf returns the format implied by a path's extension. Matching is
// case-insensitive.
func FormatOf(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Unknown
	}
	for _, format := range AllFormats() {
		if formatInfo[format].extension == ext {
			return format
		}
	}
	return Unknown
}
