// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lexiscan/internal/extractors"
	"lexiscan/internal/frequency"
	"lexiscan/internal/langid"
	"lexiscan/internal/observability"
	"lexiscan/internal/stopwords"
	"lexiscan/internal/tokenize"
)

// scriptClassifier calls text Japanese when it contains any Han or kana rune
// and English when it contains only Latin letters
type scriptClassifier struct{}

func (scriptClassifier) Classify(text string) langid.Detection {
	latin := false
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return langid.Detection{Language: "ja", Confidence: 0.9}
		}
		if unicode.Is(unicode.Latin, r) {
			latin = true
		}
	}
	if latin {
		return langid.Detection{Language: "en", Confidence: 0.9}
	}
	return langid.Detection{}
}

type fieldsTokenizer struct{}

func (fieldsTokenizer) Name() string                  { return "fields" }
func (fieldsTokenizer) Tokenize(text string) []string { return strings.Fields(text) }

func newTestProcessor(t *testing.T, opts Options) *Processor {
	t.Helper()
	filter, err := langid.NewFilter(scriptClassifier{}, "ja", 0)
	require.NoError(t, err)
	opts.Filter = filter
	opts.Words = tokenize.NewWordFilter(fieldsTokenizer{}, stopwords.Set{"の": {}, "は": {}})
	p, err := NewProcessor(opts)
	require.NoError(t, err)
	return p
}

func writeSpreadsheet(t *testing.T, path string, rows ...[]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func writeZip(t *testing.T, path string, parts map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// writePresentation writes a deck with one text shape per slide
func writePresentation(t *testing.T, path string, slideTexts ...string) {
	t.Helper()
	parts := map[string]string{}
	for i, text := range slideTexts {
		name := "ppt/slides/slide" + string(rune('1'+i)) + ".xml"
		parts[name] = `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
			`<p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
	}
	parts["ppt/presentation.xml"] = `<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`
	writeZip(t, path, parts)
}

func writeDocument(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	writeZip(t, path, map[string]string{
		"word/document.xml": `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	})
}

func TestScanDirectory_Empty(t *testing.T) {
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Equal(t, 0, summary.Entries)
}

func TestScanDirectory_OnlyUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("猫 猫 猫"), 0o644))
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Extracted)
}

func TestScanDirectory_SpreadsheetScenario(t *testing.T) {
	dir := t.TempDir()
	writeSpreadsheet(t, filepath.Join(dir, "animals.xlsx"), []interface{}{"犬", "cat"})
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, frequency.Table{"犬": 1, "cat": 1}, table)
	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, 1, summary.Languages["ja"])
}

func TestScanDirectory_PresentationScenario(t *testing.T) {
	dir := t.TempDir()
	writePresentation(t, filepath.Join(dir, "cats.pptx"), "猫", "猫")
	p := newTestProcessor(t, Options{})

	table, _, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, frequency.Table{"猫": 2}, table)
}

func TestScanDirectory_FiltersLanguageAndStopWords(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, filepath.Join(dir, "english.docx"), "hello world")
	writeDocument(t, filepath.Join(dir, "japanese.docx"), "猫 は 犬 の 友達 123 R2D2")
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, frequency.Table{"猫": 1, "犬": 1, "友達": 1}, table)
	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Languages["en"])
}

func TestScanDirectory_SkipsDirectoriesAndMatchesExtensionCase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.docx"), 0o755))
	writeDocument(t, filepath.Join(dir, "folder.docx", "nested.docx"), "隠れた")
	writeDocument(t, filepath.Join(dir, "REPORT.DOCX"), "報告")
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, frequency.Table{"報告": 1}, table)
	assert.Equal(t, 2, summary.Entries)
	assert.Equal(t, 1, summary.Skipped)
}

func TestScanDirectory_CorruptFileAbortsByDefault(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, filepath.Join(dir, "a.docx"), "猫")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.docx"), []byte("not a zip"), 0o644))
	p := newTestProcessor(t, Options{})

	table, _, err := p.ScanDirectory(dir)
	require.Error(t, err)
	assert.Nil(t, table)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, filepath.Join(dir, "b.docx"), fileErr.Path)
	assert.Equal(t, extractors.WordProcessing, fileErr.Format)
}

func TestScanDirectory_ContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, filepath.Join(dir, "a.docx"), "猫")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.docx"), []byte("not a zip"), 0o644))
	writeDocument(t, filepath.Join(dir, "c.docx"), "猫")

	var reported []string
	p := newTestProcessor(t, Options{
		ContinueOnError: true,
		OnFileError:     func(e *FileError) { reported = append(reported, filepath.Base(e.Path)) },
	})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, frequency.Table{"猫": 2}, table)
	assert.Len(t, summary.Failures, 1)
	assert.Equal(t, []string{"b.docx"}, reported)
}

func TestScanDirectory_IdempotentAndAdditive(t *testing.T) {
	combined := t.TempDir()
	onlyA := t.TempDir()
	onlyB := t.TempDir()
	for _, dir := range []string{combined, onlyA} {
		writeSpreadsheet(t, filepath.Join(dir, "a.xlsx"), []interface{}{"猫", "犬"}, []interface{}{"猫"})
	}
	for _, dir := range []string{combined, onlyB} {
		writePresentation(t, filepath.Join(dir, "b.pptx"), "猫 鳥", "鳥")
	}
	p := newTestProcessor(t, Options{})

	first, _, err := p.ScanDirectory(combined)
	require.NoError(t, err)
	second, _, err := p.ScanDirectory(combined)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	a, _, err := p.ScanDirectory(onlyA)
	require.NoError(t, err)
	b, _, err := p.ScanDirectory(onlyB)
	require.NoError(t, err)
	sum := frequency.New()
	sum.Merge(a)
	sum.Merge(b)
	assert.Equal(t, first, sum)
	assert.Equal(t, frequency.Table{"猫": 3, "犬": 1, "鳥": 2}, first)
}

func TestScanDirectory_PDFDisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.pdf"), []byte("%PDF-1.4 garbage"), 0o644))
	p := newTestProcessor(t, Options{})

	table, summary, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Equal(t, 1, summary.Skipped)
}

func TestScanDirectory_MissingDirectory(t *testing.T) {
	p := newTestProcessor(t, Options{})
	_, _, err := p.ScanDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.docx")
	writeDocument(t, path, "猫 の 手")
	p := newTestProcessor(t, Options{})

	words, err := p.ProcessFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"猫", "手"}, words)

	_, err = p.ProcessFile(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, extractors.ErrUnsupportedFormat)
}

func TestExtractWords(t *testing.T) {
	p := newTestProcessor(t, Options{})

	words, detection := p.ExtractWords("犬 cat")
	assert.Equal(t, []string{"犬", "cat"}, words)
	assert.Equal(t, "ja", detection.Language)

	words, detection = p.ExtractWords("only english here")
	assert.Empty(t, words)
	assert.Equal(t, "en", detection.Language)

	words, detection = p.ExtractWords("   ")
	assert.Empty(t, words)
	assert.False(t, detection.Known())
}

func TestScanDirectory_DebugTrace(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, filepath.Join(dir, "memo.docx"), "猫")
	var trace bytes.Buffer
	p := newTestProcessor(t, Options{Observer: observability.New(true, &trace)})

	_, _, err := p.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Contains(t, trace.String(), "extractor: word-processing")
	assert.Contains(t, trace.String(), "langid: detect completed")
	assert.Contains(t, trace.String(), `"language":"ja"`)
	assert.Contains(t, trace.String(), `"word_count":1`)
	assert.Contains(t, trace.String(), `"content_length":`)
}

func TestNewProcessor_RequiresCollaborators(t *testing.T) {
	_, err := NewProcessor(Options{})
	assert.Error(t, err)
}
