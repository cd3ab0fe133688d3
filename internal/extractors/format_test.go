// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"xlsx":         Spreadsheet,
		".XLSX":        Spreadsheet,
		"excel":        Spreadsheet,
		"pptx":         Presentation,
		"presentation": Presentation,
		" docx ":       WordProcessing,
		"word":         WordProcessing,
		"pdf":          PortableDocument,
	}
	for name, want := range cases {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("odt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormats_Deduplicates(t *testing.T) {
	formats, err := ParseFormats([]string{"xlsx", "excel", "", "pptx"})
	require.NoError(t, err)
	assert.Equal(t, []Format{Spreadsheet, Presentation}, formats)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, Spreadsheet, FormatOf("/data/Report.XLSX"))
	assert.Equal(t, Presentation, FormatOf("deck.pptx"))
	assert.Equal(t, WordProcessing, FormatOf("memo.Docx"))
	assert.Equal(t, PortableDocument, FormatOf("paper.pdf"))
	assert.Equal(t, Unknown, FormatOf("notes.txt"))
	assert.Equal(t, Unknown, FormatOf("README"))
	assert.Equal(t, Unknown, FormatOf("archive.xlsx.bak"))
}

func TestFormatStrings(t *testing.T) {
	assert.Equal(t, "spreadsheet", Spreadsheet.String())
	assert.Equal(t, ".pptx", Presentation.Extension())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "", Unknown.Extension())
}

func TestRegistry_DefaultFormats(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, DefaultFormats(), registry.Formats())

	_, _, ok := registry.Lookup("paper.pdf")
	assert.False(t, ok, "pdf is opt-in")

	format, extractor, ok := registry.Lookup("Book.XLSX")
	assert.True(t, ok)
	assert.Equal(t, Spreadsheet, format)
	assert.NotNil(t, extractor)
}

func TestRegistry_UnknownFormat(t *testing.T) {
	_, err := NewRegistry(Unknown)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_Extract(t *testing.T) {
	registry, err := NewRegistry(WordProcessing)
	require.NoError(t, err)

	registry.Register(WordProcessing, ExtractorFunc(func(path string) (string, error) {
		return "text of " + path, nil
	}))
	text, err := registry.Extract("memo.docx")
	require.NoError(t, err)
	assert.Equal(t, "text of memo.docx", text)

	_, err = registry.Extract("deck.pptx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	boom := errors.New("boom")
	registry.Register(WordProcessing, ExtractorFunc(func(string) (string, error) { return "", boom }))
	_, err = registry.Extract("memo.docx")
	assert.ErrorIs(t, err, boom)
}
