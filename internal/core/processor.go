// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core drives a scan: it walks a directory, extracts each supported
// document, keeps the documents written in the target language and folds
// their words into a frequency table.
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"lexiscan/internal/extractors"
	"lexiscan/internal/frequency"
	"lexiscan/internal/langid"
	"lexiscan/internal/observability"
	"lexiscan/internal/tokenize"
)

// Options wires the collaborators of a Processor. The classifier inside
// Filter and the tokenizer inside Words are built once by the caller and
// shared by every file of every scan.
type Options struct {
	Registry *extractors.Registry
	Filter   *langid.Filter
	Words    *tokenize.WordFilter

	// ContinueOnError records extraction failures in the summary instead of
	// aborting the scan
	ContinueOnError bool

	// OnFileError is called for every isolated failure when ContinueOnError
	// is set
	OnFileError func(*FileError)

	Observer *observability.StandardObserver
}

// Summary counts what a scan did with each directory entry
type Summary struct {
	Directory string `json:"directory" yaml:"directory"`
	Entries   int    `json:"entries" yaml:"entries"`
	Skipped   int    `json:"skipped" yaml:"skipped"`
	Extracted int    `json:"extracted" yaml:"extracted"`
	Accepted  int    `json:"accepted" yaml:"accepted"`
	Rejected  int    `json:"rejected" yaml:"rejected"`
	Words     int    `json:"words" yaml:"words"`
	// Languages counts detections per language code; "unknown" for text
	// that could not be classified
	Languages map[string]int `json:"languages" yaml:"languages"`
	Failures  []*FileError   `json:"-" yaml:"-"`
}

func newSummary(dir string) *Summary {
	return &Summary{Directory: dir, Languages: make(map[string]int)}
}

// Processor scans directories of office documents
type Processor struct {
	registry        *extractors.Registry
	filter          *langid.Filter
	words           *tokenize.WordFilter
	continueOnError bool
	onFileError     func(*FileError)
	observer        *observability.StandardObserver
}

// NewProcessor validates options and creates a Processor
func NewProcessor(opts Options) (*Processor, error) {
	if opts.Filter == nil {
		return nil, errors.New("language filter is required")
	}
	if opts.Words == nil {
		return nil, errors.New("word filter is required")
	}
	registry := opts.Registry
	if registry == nil {
		var err error
		if registry, err = extractors.NewRegistry(); err != nil {
			return nil, err
		}
	}
	observer := opts.Observer
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}
	return &Processor{
		registry:        registry,
		filter:          opts.Filter,
		words:           opts.Words,
		continueOnError: opts.ContinueOnError,
		onFileError:     opts.OnFileError,
		observer:        observer,
	}, nil
}

// ExtractWords runs the language filter and, when the text is in the target
// language, the tokenizer and stop-word filter. Text in any other language
// yields no words.
func (p *Processor) ExtractWords(text string) ([]string, langid.Detection) {
	result := p.extractWords(text)
	return result.words, result.detection
}

// fileResult is the outcome of one document
type fileResult struct {
	words     []string
	detection langid.Detection
	accepted  bool
}

func (p *Processor) extractWords(text string) fileResult {
	done := p.observer.StartStep("langid", "detect", "")
	detection, ok := p.filter.Accept(text)
	done(ok, detection.String())
	if !ok {
		return fileResult{detection: detection}
	}

	done = p.observer.StartStep("tokenize", p.words.Tokenizer().Name(), "")
	words := p.words.Words(text)
	done(true, fmt.Sprintf("%d words", len(words)))
	return fileResult{words: words, detection: detection, accepted: true}
}

// ProcessFile extracts a single document and returns its surviving words.
// Extraction failures are returned as *FileError.
func (p *Processor) ProcessFile(path string) ([]string, error) {
	result, err := p.processFile(path)
	return result.words, err
}

func (p *Processor) processFile(path string) (fileResult, error) {
	format, extractor, ok := p.registry.Lookup(path)
	if !ok {
		return fileResult{}, &FileError{Path: path, Format: format, Err: extractors.ErrUnsupportedFormat}
	}

	done := p.observer.StartStep("extractor", format.String(), path)
	start := time.Now()
	text, err := extractor.Extract(path)
	if err != nil {
		done(false, err.Error())
		p.observer.LogOperation(observability.StandardObservabilityData{
			Component:  "extractor",
			Operation:  "extract",
			FilePath:   path,
			DurationMs: time.Since(start).Milliseconds(),
			Error:      err.Error(),
			Metadata:   map[string]interface{}{"format": format.String()},
		})
		return fileResult{}, &FileError{Path: path, Format: format, Err: err}
	}
	done(true, fmt.Sprintf("%d bytes", len(text)))

	result := p.extractWords(text)
	p.observer.LogOperation(observability.StandardObservabilityData{
		Component:     "extractor",
		Operation:     "extract",
		FilePath:      path,
		DurationMs:    time.Since(start).Milliseconds(),
		Success:       true,
		ContentLength: len(text),
		Language:      result.detection.Language,
		WordCount:     len(result.words),
		Metadata: map[string]interface{}{
			"format":     format.String(),
			"confidence": result.detection.Confidence,
			"accepted":   result.accepted,
		},
	})
	return result, nil
}

// ScanDirectory processes every supported document directly inside dir, in
// lexical order, and returns the combined word frequencies. Subdirectories
// and unsupported files are skipped. Unless ContinueOnError is set, the
// first extraction failure aborts the scan and no table is returned.
func (p *Processor) ScanDirectory(dir string) (frequency.Table, *Summary, error) {
	finish := p.observer.StartTiming("core", "scan", dir)
	done := p.observer.StartStep("core", "scan", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		done(false, err.Error())
		finish(false, nil)
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	table := frequency.New()
	summary := newSummary(dir)
	for _, entry := range entries {
		summary.Entries++
		path := filepath.Join(dir, entry.Name())

		if isDir(entry, path) {
			summary.Skipped++
			continue
		}
		if _, _, ok := p.registry.Lookup(path); !ok {
			summary.Skipped++
			continue
		}

		result, err := p.processFile(path)
		if err != nil {
			var fileErr *FileError
			if !errors.As(err, &fileErr) || !p.continueOnError {
				done(false, err.Error())
				finish(false, map[string]interface{}{"path": path})
				return nil, summary, err
			}
			summary.Failures = append(summary.Failures, fileErr)
			if p.onFileError != nil {
				p.onFileError(fileErr)
			}
			continue
		}

		summary.Extracted++
		summary.Languages[languageKey(result.detection)]++
		if result.accepted {
			summary.Accepted++
		} else {
			summary.Rejected++
		}
		summary.Words += len(result.words)
		table.Add(result.words...)
	}

	p.observer.LogMetric("core", "distinct_words", len(table))
	done(true, fmt.Sprintf("%d files, %d words", summary.Extracted, summary.Words))
	finish(true, map[string]interface{}{
		"entries":  summary.Entries,
		"accepted": summary.Accepted,
		"words":    summary.Words,
	})
	return table, summary, nil
}

func languageKey(d langid.Detection) string {
	if !d.Known() {
		return "unknown"
	}
	return d.Language
}

// isDir reports whether an entry is a directory, following symlinks
func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
