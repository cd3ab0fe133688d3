// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// maxXMLDepth bounds element nesting in package parts
const maxXMLDepth = 256

// maxPartSize bounds the uncompressed size of a single package part (64MB)
const maxPartSize = 64 * 1024 * 1024

// ErrXMLTooDeep is returned when a package part nests elements beyond maxXMLDepth
var ErrXMLTooDeep = errors.New("xml nesting exceeds maximum depth")

// ErrMissingPart is returned when a required package part is absent
var ErrMissingPart = errors.New("missing package part")

// relationship is one entry of an OPC .rels part
type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

// openPackage opens an OOXML package and indexes its parts by name
func openPackage(filePath string) (*zip.ReadCloser, map[string]*zip.File, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open package: %w", err)
	}
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	return zr, parts, nil
}

// openPart opens a package part with a size limit applied
func openPart(parts map[string]*zip.File, name string) (io.ReadCloser, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("part %s too large: %d bytes", name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(rc, maxPartSize), rc}, nil
}

// decodePart unmarshals a small package part such as a .rels file
func decodePart(parts map[string]*zip.File, name string, v any) error {
	rc, err := openPart(parts, name)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// resolveTarget resolves a relationship target against the directory of its
// source part
func resolveTarget(sourceDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(sourceDir, target))
}

// elementHandler receives the streaming events of a package part. stack holds
// the local names of the open elements, the current element last.
type elementHandler struct {
	start func(stack []string, el xml.StartElement)
	end   func(stack []string, el xml.EndElement)
	text  func(stack []string, data []byte)
}

// walkPart streams a package part through handler, tracking element depth
func walkPart(parts map[string]*zip.File, name string, handler elementHandler) error {
	rc, err := openPart(parts, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var stack []string
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if len(stack) > maxXMLDepth {
				return fmt.Errorf("%s: %w", name, ErrXMLTooDeep)
			}
			if handler.start != nil {
				handler.start(stack, t)
			}
		case xml.EndElement:
			if handler.end != nil {
				handler.end(stack, t)
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if handler.text != nil && len(stack) > 0 {
				handler.text(stack, t)
			}
		}
	}
}

// attr returns the value of the first attribute with the given local name
func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
