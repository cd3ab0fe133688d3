// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// ExtractPresentation returns the text of every top-level shape of every
// slide, in presentation order. Paragraphs inside a shape are joined with
// "\n" and line breaks become "\v"; each shape is followed by a space.
func ExtractPresentation(filePath string) (string, error) {
	zr, parts, err := openPackage(filePath)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	slides, err := slideOrder(parts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, slide := range slides {
		if err := extractSlide(parts, slide, &b); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// slideOrder lists slide part names in the order the deck presents them. The
// order comes from presentation.xml; packages without a usable slide list
// fall back to slide number order.
func slideOrder(parts map[string]*zip.File) ([]string, error) {
	mainPart := "ppt/presentation.xml"
	var rootRels relationships
	if err := decodePart(parts, "_rels/.rels", &rootRels); err == nil {
		for _, rel := range rootRels.Items {
			if rel.Type == relTypeOfficeDocument {
				mainPart = resolveTarget("", rel.Target)
				break
			}
		}
	}

	if _, ok := parts[mainPart]; !ok {
		return nil, fmt.Errorf("not a presentation: %w: %s", ErrMissingPart, mainPart)
	}

	var pres presentationXML
	if err := decodePart(parts, mainPart, &pres); err != nil {
		return nil, err
	}

	dir, file := path.Split(mainPart)
	var rels relationships
	relsErr := decodePart(parts, path.Join(dir, "_rels", file+".rels"), &rels)

	if relsErr == nil && len(pres.SlideIDs) > 0 {
		targets := make(map[string]string)
		for _, rel := range rels.Items {
			if rel.Type == relTypeSlide && rel.TargetMode != "External" {
				targets[rel.ID] = resolveTarget(strings.TrimSuffix(dir, "/"), rel.Target)
			}
		}
		var slides []string
		for _, id := range pres.SlideIDs {
			target, ok := targets[id.RelID]
			if !ok {
				continue
			}
			if _, ok := parts[target]; ok {
				slides = append(slides, target)
			}
		}
		if len(slides) > 0 {
			return slides, nil
		}
	}

	return slidesByNumber(parts), nil
}

func slidesByNumber(parts map[string]*zip.File) []string {
	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for name := range parts {
		m := slidePartPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{name: name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	slides := make([]string, len(found))
	for i, f := range found {
		slides[i] = f.name
	}
	return slides
}

// extractSlide appends the text of the slide's top-level shapes to b
func extractSlide(parts map[string]*zip.File, name string, b *strings.Builder) error {
	var (
		shapeDepth int
		paragraphs int
		shape      strings.Builder
	)

	return walkPart(parts, name, elementHandler{
		start: func(stack []string, el xml.StartElement) {
			depth := len(stack)
			if shapeDepth == 0 {
				if el.Name.Local == "sp" && depth >= 2 && stack[depth-2] == "spTree" {
					shapeDepth = depth
					paragraphs = 0
					shape.Reset()
				}
				return
			}
			parent := stack[depth-2]
			switch {
			case el.Name.Local == "p" && parent == "txBody":
				if paragraphs > 0 {
					shape.WriteString("\n")
				}
				paragraphs++
			case el.Name.Local == "br" && parent == "p":
				shape.WriteString("\v")
			}
		},
		end: func(stack []string, el xml.EndElement) {
			if shapeDepth != 0 && len(stack) == shapeDepth && el.Name.Local == "sp" {
				b.WriteString(shape.String())
				b.WriteString(" ")
				shapeDepth = 0
			}
		},
		text: func(stack []string, data []byte) {
			depth := len(stack)
			if shapeDepth == 0 || depth < 2 || stack[depth-1] != "t" {
				return
			}
			if parent := stack[depth-2]; parent == "r" || parent == "fld" {
				shape.Write(data)
			}
		},
	})
}
