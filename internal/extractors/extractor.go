// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractors turns office documents into plain text. Each Format has
// exactly one Extractor; the Registry maps enabled formats to extractors so
// the directory scan dispatches on the Format value instead of on strings.
//
// Every extractor concatenates the document's text units in document order
// and writes a single space after each unit (spreadsheet row, presentation
// shape, document paragraph, PDF page). No other normalization is applied.
package extractors

import (
	"fmt"
	"sort"
)

// Extractor returns the concatenated text of a document
type Extractor interface {
	Extract(path string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(path string) (string, error)

func (fn ExtractorFunc) Extract(path string) (string, error) {
	return fn(path)
}

// defaultExtractor returns the built-in extractor for a format
func defaultExtractor(format Format) Extractor {
	switch format {
	case Spreadsheet:
		return ExtractorFunc(ExtractSpreadsheet)
	case Presentation:
		return ExtractorFunc(ExtractPresentation)
	case WordProcessing:
		return ExtractorFunc(ExtractWordProcessing)
	case PortableDocument:
		return ExtractorFunc(ExtractPDF)
	default:
		return nil
	}
}

// Registry holds the extractor of every enabled format
type Registry struct {
	extractors map[Format]Extractor
}

// NewRegistry enables the given formats with their built-in extractors.
// With no arguments the default formats are enabled.
func NewRegistry(formats ...Format) (*Registry, error) {
	if len(formats) == 0 {
		formats = DefaultFormats()
	}
	r := &Registry{extractors: make(map[Format]Extractor)}
	for _, format := range formats {
		extractor := defaultExtractor(format)
		if extractor == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}
		r.extractors[format] = extractor
	}
	return r, nil
}

// Register enables a format with a custom extractor
func (r *Registry) Register(format Format, extractor Extractor) {
	r.extractors[format] = extractor
}

// Lookup returns the extractor for a path, or false when the path's format
// is unknown or disabled
func (r *Registry) Lookup(path string) (Format, Extractor, bool) {
	format := FormatOf(path)
	extractor, ok := r.extractors[format]
	if !ok {
		return format, nil, false
	}
	return format, extractor, true
}

// Formats returns the enabled formats in declaration order
func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.extractors))
	for format := range r.extractors {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Extract extracts text from path with its registered extractor
func (r *Registry) Extract(path string) (string, error) {
	format, extractor, ok := r.Lookup(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	text, err := extractor.Extract(path)
	if err != nil {
		return "", fmt.Errorf("error extracting %s text: %w", format, err)
	}
	return text, nil
}
