// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"lexiscan/internal/formatters"
	"lexiscan/internal/formatters/shared"
	"lexiscan/internal/frequency"

	"github.com/fatih/color"
	"golang.org/x/text/width"
)

// maxWordWidth caps the word column, in terminal cells
const maxWordWidth = 30

// barWidth is the length of the bar drawn for the most frequent word
const barWidth = 20

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable frequency table with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(table frequency.Table, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder

	entries := shared.SelectEntries(table, options)
	if len(entries) == 0 {
		builder.WriteString("No words found.\n")
	} else {
		f.appendTable(&builder, entries, options)
	}

	f.appendTotals(&builder, table, len(entries), options)
	if options.Verbose && options.Summary != nil {
		f.appendSummary(&builder, options)
	}
	return builder.String(), nil
}

func (f *Formatter) paint(name string, options formatters.FormatterOptions, s string) string {
	if options.NoColor {
		return s
	}
	return f.colors[name].Sprint(s)
}

func (f *Formatter) appendTable(builder *strings.Builder, entries []frequency.Entry, options formatters.FormatterOptions) {
	wordWidth := len("WORD")
	for _, entry := range entries {
		if w := displayWidth(entry.Word); w > wordWidth {
			wordWidth = w
		}
	}
	if wordWidth > maxWordWidth {
		wordWidth = maxWordWidth
	}

	header := fmt.Sprintf("%5s  %s  %8s", "RANK", pad("WORD", wordWidth), "COUNT")
	builder.WriteString(f.paint("white", options, header) + "\n")
	builder.WriteString(f.paint("white", options, strings.Repeat("-", displayWidth(header)+barWidth+2)) + "\n")

	maxCount := entries[0].Count
	for i, entry := range entries {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("█", max(1, entry.Count*barWidth/maxCount))
		}
		fmt.Fprintf(builder, "%5d  %s  %s  %s\n",
			i+1,
			f.paint("cyan", options, pad(truncate(entry.Word, wordWidth), wordWidth)),
			f.paint("green", options, fmt.Sprintf("%8d", entry.Count)),
			f.paint("yellow", options, bar))
	}
}

func (f *Formatter) appendTotals(builder *strings.Builder, table frequency.Table, shown int, options formatters.FormatterOptions) {
	line := fmt.Sprintf("\n%d distinct words, %d occurrences", len(table), table.Total())
	if shown < len(table) {
		line += fmt.Sprintf(" (showing top %d)", shown)
	}
	builder.WriteString(f.paint("white", options, line) + "\n")
}

func (f *Formatter) appendSummary(builder *strings.Builder, options formatters.FormatterOptions) {
	s := options.Summary
	fmt.Fprintf(builder, "Directory: %s\n", s.Directory)
	fmt.Fprintf(builder, "Entries: %d  Skipped: %d  Extracted: %d  Accepted: %d  Rejected: %d  Failed: %d\n",
		s.Entries, s.Skipped, s.Extracted, s.Accepted, s.Rejected, len(s.Failures))

	if len(s.Languages) > 0 {
		languages := make([]string, 0, len(s.Languages))
		for lang := range s.Languages {
			languages = append(languages, lang)
		}
		sort.Strings(languages)
		parts := make([]string, len(languages))
		for i, lang := range languages {
			parts[i] = fmt.Sprintf("%s=%d", lang, s.Languages[lang])
		}
		fmt.Fprintf(builder, "Languages: %s\n", strings.Join(parts, " "))
	}
	for _, failure := range s.Failures {
		builder.WriteString(f.paint("yellow", options, "Failed: "+failure.Error()) + "\n")
	}
}

// displayWidth counts terminal cells; East Asian wide and fullwidth runes
// take two
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, cells int) string {
	if w := displayWidth(s); w < cells {
		return s + strings.Repeat(" ", cells-w)
	}
	return s
}

func truncate(s string, cells int) string {
	if displayWidth(s) <= cells {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		w := displayWidth(string(r))
		if n+w > cells-1 {
			break
		}
		b.WriteRune(r)
		n += w
	}
	b.WriteString("…")
	return b.String()
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
