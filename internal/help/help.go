// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"lexiscan/internal/extractors"
	"lexiscan/internal/formatters"
	"lexiscan/internal/stopwords"

	"github.com/fatih/color"
)

// System prints the command line help
type System struct {
	out     io.Writer
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	return &System{
		out:     out,
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

func (h *System) println(name, s string) {
	if h.noColor {
		fmt.Fprintln(h.out, s)
		return
	}
	h.colors[name].Fprintln(h.out, s)
}

// Show prints the help topic named by topic ("", "formats" or "languages").
// It reports false for an unknown topic.
func (h *System) Show(topic string) bool {
	switch strings.ToLower(strings.TrimSpace(topic)) {
	case "":
		h.ShowGeneralHelp()
	case "formats":
		h.ShowFormatsHelp()
	case "languages":
		h.ShowLanguagesHelp()
	default:
		return false
	}
	return true
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.println("title", "lexiscan - word frequencies of office documents")
	fmt.Fprintln(h.out, "================================================")
	fmt.Fprintln(h.out)
	h.println("header", "USAGE:")
	fmt.Fprintln(h.out, "  lexiscan [options] <directory>")
	fmt.Fprintln(h.out, "  lexiscan --dir <directory> [options]")
	fmt.Fprintln(h.out)

	h.println("header", "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --dir\t<path>\tDirectory to scan (or first argument, or LEXISCAN_DIR)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles")
	fmt.Fprintf(w, "  --format\t<format>\tOutput format: %s (default: json)\n", strings.Join(formatters.List(), ", "))
	fmt.Fprintln(w, "  --lang\t<tag>\tTarget language, BCP 47 tag (default: ja)")
	fmt.Fprintln(w, "  --formats\t<list>\tDocument formats to scan: xlsx,pptx,docx,pdf (default: xlsx,pptx,docx)")
	fmt.Fprintln(w, "  --top\t<n>\tOnly output the n most frequent words")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --min-confidence\t<0-1>\tReject documents detected with lower confidence (default: 0)")
	fmt.Fprintln(w, "  --stopwords-file\t<path>\tStop-word list replacing the bundled one")
	fmt.Fprintln(w, "  --continue-on-error\t\tReport unreadable documents and keep scanning")
	fmt.Fprintln(w, "  --verbose\t\tInclude the scan summary in the output")
	fmt.Fprintln(w, "  --debug\t\tTrace every pipeline step on stderr (or set LEXISCAN_DEBUG)")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help formats\t\tList document and output formats")
	fmt.Fprintln(w, "  --help languages\t\tList bundled stop-word languages")
	w.Flush()

	fmt.Fprintln(h.out)
	h.println("header", "EXAMPLES:")
	h.println("example", "    lexiscan ./documents")
	h.println("example", "    lexiscan --dir ./documents --format text --top 20")
	h.println("example", "    lexiscan --profile english --formats docx,pdf ./reports")
	h.println("example", "    lexiscan --list-profiles --config lexiscan.yaml")

	fmt.Fprintln(h.out)
	h.println("header", "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Project config: lexiscan.yaml or .lexiscan.yaml (in current directory)")
	fmt.Fprintln(h.out, "  User config:    $XDG_CONFIG_HOME/lexiscan/config.yaml or ~/.lexiscan.yaml")
	fmt.Fprintln(h.out, "  Environment:    LEXISCAN_CONFIG_DIR - Override config directory")
	fmt.Fprintln(h.out)
	h.println("header", "EXIT CODES:")
	fmt.Fprintln(h.out, "  0 success, 1 scan or configuration error, 2 usage error")
}

// ShowFormatsHelp lists the document formats and output formats
func (h *System) ShowFormatsHelp() {
	h.println("header", "DOCUMENT FORMATS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	defaults := make(map[extractors.Format]bool)
	for _, format := range extractors.DefaultFormats() {
		defaults[format] = true
	}
	for _, format := range extractors.AllFormats() {
		state := "opt-in"
		if defaults[format] {
			state = "default"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", format.Extension(), format, state)
	}
	w.Flush()

	fmt.Fprintln(h.out)
	h.println("header", "OUTPUT FORMATS:")
	w = tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, info := range formatters.GetSupportedFormats() {
		fmt.Fprintf(w, "  %s\t%s\n", info.Name, info.Description)
	}
	w.Flush()
}

// ShowLanguagesHelp lists the languages with a bundled stop-word list
func (h *System) ShowLanguagesHelp() {
	h.println("header", "BUNDLED STOP-WORD LISTS:")
	for _, lang := range stopwords.Languages() {
		set, err := stopwords.Load(lang)
		if err != nil {
			continue
		}
		h.println("item", fmt.Sprintf("  %s (%d words)", lang, set.Len()))
	}
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "  Other target languages need --stopwords-file or stopwords.file in the config.")
}
