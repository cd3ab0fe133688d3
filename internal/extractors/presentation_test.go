// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPresentation_SlideListOrder(t *testing.T) {
	dir := t.TempDir()
	path := writePackage(t, dir, "deck.pptx", presentationParts(map[string]string{
		"ppt/slides/slide1.xml": slide(shape("first")),
		"ppt/slides/slide2.xml": slide(shape("second")),
	}, "slides/slide2.xml", "slides/slide1.xml"))

	text, err := ExtractPresentation(path)
	require.NoError(t, err)
	assert.Equal(t, "second first ", text)
}

func TestExtractPresentation_ShapeText(t *testing.T) {
	lineBreak := `<p:sp><p:txBody><a:bodyPr/><a:p><a:r><a:t>a</a:t></a:r><a:br/><a:r><a:t>b</a:t></a:r></a:p></p:txBody></p:sp>`
	grouped := `<p:grpSp><p:nvGrpSpPr/>` + shape("hidden") + `</p:grpSp>`
	noText := `<p:sp><p:nvSpPr><p:cNvPr id="9" name="Rectangle"/></p:nvSpPr></p:sp>`

	cases := []struct {
		name   string
		shapes []string
		want   string
	}{
		{"single paragraph", []string{shape("猫")}, "猫 "},
		{"paragraphs joined by newline", []string{shape("x", "y")}, "x\ny "},
		{"line break is vertical tab", []string{lineBreak}, "a\vb "},
		{"group shapes are skipped", []string{grouped, shape("top")}, "top "},
		{"shape without text still separates", []string{noText, shape("z")}, " z "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writePackage(t, t.TempDir(), "deck.pptx", presentationParts(map[string]string{
				"ppt/slides/slide1.xml": slide(tc.shapes...),
			}, "slides/slide1.xml"))

			text, err := ExtractPresentation(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, text)
		})
	}
}

func TestExtractPresentation_FallsBackToSlideNumbers(t *testing.T) {
	path := writePackage(t, t.TempDir(), "deck.pptx", map[string]string{
		"ppt/presentation.xml":   `<p:presentation ` + nsP + `/>`,
		"ppt/slides/slide10.xml": slide(shape("ten")),
		"ppt/slides/slide2.xml":  slide(shape("two")),
	})

	text, err := ExtractPresentation(path)
	require.NoError(t, err)
	assert.Equal(t, "two ten ", text)
}

func TestExtractPresentation_EmptyDeck(t *testing.T) {
	path := writePackage(t, t.TempDir(), "deck.pptx", presentationParts(nil))

	text, err := ExtractPresentation(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractPresentation_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(dir, "broken.pptx")
		require.NoError(t, os.WriteFile(path, []byte("not a package"), 0o644))
		_, err := ExtractPresentation(path)
		assert.Error(t, err)
	})

	t.Run("missing presentation part", func(t *testing.T) {
		path := writePackage(t, dir, "other.pptx", map[string]string{"docProps/app.xml": "<Properties/>"})
		_, err := ExtractPresentation(path)
		assert.ErrorIs(t, err, ErrMissingPart)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ExtractPresentation(filepath.Join(dir, "nope.pptx"))
		assert.Error(t, err)
	})
}
