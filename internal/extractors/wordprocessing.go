// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// ExtractWordProcessing returns the text of every body-level paragraph, each
// followed by a space. Text in tables, headers, footers, text boxes and notes
// is not included.
func ExtractWordProcessing(filePath string) (string, error) {
	zr, parts, err := openPackage(filePath)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	mainPart := "word/document.xml"
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
		return "", fmt.Errorf("not a word-processing document: %w: %s", ErrMissingPart, mainPart)
	}

	var (
		b           strings.Builder
		paragraph   strings.Builder
		paraDepth   int
		inParagraph bool
	)

	// runChild reports whether the element at the top of stack is a direct
	// child of a run that belongs to the current paragraph, either directly
	// or through a hyperlink
	runChild := func(stack []string) bool {
		depth := len(stack)
		if !inParagraph || depth < paraDepth+2 || stack[depth-2] != "r" {
			return false
		}
		runDepth := depth - 1
		if runDepth == paraDepth+1 {
			return true
		}
		return runDepth == paraDepth+2 && stack[paraDepth] == "hyperlink"
	}

	err = walkPart(parts, mainPart, elementHandler{
		start: func(stack []string, el xml.StartElement) {
			depth := len(stack)
			if !inParagraph {
				if el.Name.Local == "p" && depth >= 2 && stack[depth-2] == "body" {
					inParagraph = true
					paraDepth = depth
					paragraph.Reset()
				}
				return
			}
			if !runChild(stack) {
				return
			}
			switch el.Name.Local {
			case "tab", "ptab":
				paragraph.WriteString("\t")
			case "cr":
				paragraph.WriteString("\n")
			case "br":
				if brType := attr(el, "type"); brType == "" || brType == "textWrapping" {
					paragraph.WriteString("\n")
				}
			case "noBreakHyphen":
				paragraph.WriteString("-")
			}
		},
		end: func(stack []string, el xml.EndElement) {
			if inParagraph && len(stack) == paraDepth && el.Name.Local == "p" {
				b.WriteString(paragraph.String())
				b.WriteString(" ")
				inParagraph = false
			}
		},
		text: func(stack []string, data []byte) {
			if stack[len(stack)-1] == "t" && runChild(stack) {
				paragraph.Write(data)
			}
		},
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
