// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"lexiscan/internal/config"
	"lexiscan/internal/core"
	"lexiscan/internal/extractors"
	"lexiscan/internal/formatters"
	"lexiscan/internal/help"
	"lexiscan/internal/langid"
	"lexiscan/internal/observability"
	"lexiscan/internal/paths"
	"lexiscan/internal/stopwords"
	"lexiscan/internal/tokenize"
	"lexiscan/internal/version"

	// Import formatters to register them
	_ "lexiscan/internal/formatters/csv"
	_ "lexiscan/internal/formatters/json"
	_ "lexiscan/internal/formatters/text"
	_ "lexiscan/internal/formatters/yaml"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// configFlags holds the raw command line values
type configFlags struct {
	dir             string
	configFile      string
	profile         string
	listProfiles    bool
	format          string
	lang            string
	formats         string
	top             int
	output          string
	minConfidence   float64
	stopWordsFile   string
	continueOnError bool
	verbose         bool
	debug           bool
	noColor         bool
	showVersion     bool
	showHelp        bool
}

// finalConfiguration is the result of merging config file, profile and flags
type finalConfiguration struct {
	dir       string
	output    string
	settings  config.Settings
	detection config.Detection
	stopWords config.StopWords
}

// usageError marks errors caused by invalid command line input
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...interface{}) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func registerFlags(fs *flag.FlagSet) *configFlags {
	flags := &configFlags{}
	fs.StringVar(&flags.dir, "dir", "", "Directory to scan")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&flags.profile, "profile", "", "Profile name to use from config file")
	fs.BoolVar(&flags.listProfiles, "list-profiles", false, "List available profiles")
	fs.StringVar(&flags.format, "format", "", "Output format: json, yaml, csv or text")
	fs.StringVar(&flags.lang, "lang", "", "Target language (BCP 47 tag)")
	fs.StringVar(&flags.formats, "formats", "", "Comma-separated document formats to scan")
	fs.IntVar(&flags.top, "top", 0, "Only output the n most frequent words")
	fs.StringVar(&flags.output, "output", "", "Path to output file")
	fs.Float64Var(&flags.minConfidence, "min-confidence", 0, "Minimum detection confidence")
	fs.StringVar(&flags.stopWordsFile, "stopwords-file", "", "Stop-word list replacing the bundled one")
	fs.BoolVar(&flags.continueOnError, "continue-on-error", false, "Report unreadable documents and keep scanning")
	fs.BoolVar(&flags.verbose, "verbose", false, "Include the scan summary in the output")
	fs.BoolVar(&flags.debug, "debug", false, "Trace every pipeline step on stderr")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")
	fs.BoolVar(&flags.showHelp, "help", false, "Show help")
	return flags
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lexiscan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := registerFlags(fs)

	interactive := isTerminal(stdout) && isTerminal(stderr)
	noColor := !interactive || os.Getenv("CI") != ""

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			help.NewSystem(stdout, noColor).ShowGeneralHelp()
			return exitOK
		}
		printError(stderr, err)
		fmt.Fprintln(stderr, "Run 'lexiscan --help' for usage.")
		return exitUsage
	}
	noColor = noColor || flags.noColor
	color.NoColor = noColor

	if flags.showHelp {
		if !help.NewSystem(stdout, noColor).Show(fs.Arg(0)) {
			printError(stderr, fmt.Errorf("unknown help topic %q (expected formats or languages)", fs.Arg(0)))
			return exitUsage
		}
		return exitOK
	}
	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	cfg, configPath, err := config.LoadConfigOrDefault(flags.configFile)
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	if flags.listProfiles {
		handleProfiles(cfg, configPath, stdout)
		return exitOK
	}

	final, err := resolveConfiguration(fs, flags, cfg)
	if err != nil {
		printError(stderr, err)
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, "Run 'lexiscan --help' for usage.")
			return exitUsage
		}
		return exitError
	}
	if final.settings.NoColor {
		color.NoColor = true
	}

	observer := observability.New(final.settings.Debug, stderr)
	if configPath != "" {
		observer.LogDetail("config", "loaded "+configPath)
	}

	processor, err := buildProcessor(final, observer, stderr)
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	table, summary, err := processor.ScanDirectory(final.dir)
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	textNoColor := color.NoColor || final.output != ""
	result, err := formatters.Export(final.settings.Format, table, formatters.FormatterOptions{
		Top:     final.settings.Top,
		Verbose: final.settings.Verbose,
		NoColor: textNoColor,
		Summary: summary,
	})
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	if err := writeResult(final.output, result, stdout); err != nil {
		printError(stderr, err)
		return exitError
	}
	if final.output != "" {
		fmt.Fprintf(stderr, "Results written to %s\n", final.output)
	}
	return exitOK
}

// resolveConfiguration merges settings with precedence config < profile < flags
func resolveConfiguration(fs *flag.FlagSet, flags *configFlags, cfg *config.Config) (*finalConfiguration, error) {
	settings, detection, stop, err := cfg.Resolve(flags.profile)
	if err != nil {
		return nil, &usageError{err: err}
	}

	if isFlagSet(fs, "format") {
		settings.Format = strings.ToLower(flags.format)
	}
	if isFlagSet(fs, "lang") {
		settings.Language = flags.lang
	}
	if isFlagSet(fs, "formats") {
		settings.Formats = splitList(flags.formats)
	}
	if isFlagSet(fs, "top") {
		settings.Top = flags.top
	}
	if isFlagSet(fs, "min-confidence") {
		settings.MinConfidence = flags.minConfidence
	}
	if isFlagSet(fs, "continue-on-error") {
		settings.ContinueOnError = flags.continueOnError
	}
	if isFlagSet(fs, "verbose") {
		settings.Verbose = flags.verbose
	}
	if isFlagSet(fs, "debug") {
		settings.Debug = flags.debug
	}
	if isFlagSet(fs, "no-color") {
		settings.NoColor = flags.noColor
	}
	if isFlagSet(fs, "stopwords-file") {
		stop.File = flags.stopWordsFile
	}

	// Check if LEXISCAN_DEBUG environment variable is set
	if os.Getenv("LEXISCAN_DEBUG") != "" {
		settings.Debug = true
	}

	if err := config.ValidateSettings(settings); err != nil {
		return nil, &usageError{err: err}
	}
	if settings.Language, err = config.CanonicalLanguage(settings.Language); err != nil {
		return nil, &usageError{err: err}
	}
	if detection.Languages, err = detection.Candidates(settings.Language); err != nil {
		return nil, fmt.Errorf("detection languages: %w", err)
	}

	dir, err := resolveDirectory(fs, flags)
	if err != nil {
		return nil, err
	}

	output := ""
	if flags.output != "" {
		if err := paths.ValidatePath(flags.output); err != nil {
			return nil, &usageError{err: err}
		}
		output = paths.NormalizePath(flags.output)
	}
	if stop.File != "" {
		stop.File = paths.NormalizePath(stop.File)
	}

	return &finalConfiguration{
		dir:       dir,
		output:    output,
		settings:  settings,
		detection: detection,
		stopWords: stop,
	}, nil
}

// resolveDirectory picks the scan directory: the positional argument, then
// --dir, then LEXISCAN_DIR
func resolveDirectory(fs *flag.FlagSet, flags *configFlags) (string, error) {
	if fs.NArg() > 1 {
		return "", usagef("expected one directory, got %d arguments", fs.NArg())
	}
	dir := fs.Arg(0)
	if dir == "" {
		dir = flags.dir
	}
	if dir == "" {
		dir = os.Getenv("LEXISCAN_DIR")
	}
	if dir == "" {
		return "", usagef("no directory given (pass it as an argument, with --dir or in LEXISCAN_DIR)")
	}
	if err := paths.ValidatePath(dir); err != nil {
		return "", &usageError{err: err}
	}
	return paths.NormalizePath(dir), nil
}

// buildProcessor creates the detector, tokenizer, stop-word set and
// extractor registry once for the whole scan
func buildProcessor(final *finalConfiguration, observer *observability.StandardObserver, stderr io.Writer) (*core.Processor, error) {
	settings := final.settings

	finishStep := observer.StartStep("setup", "building language detector", "")
	classifier, err := langid.NewLinguaClassifier(langid.Settings{
		Languages:   final.detection.Languages,
		Preload:     final.detection.Preload,
		LowAccuracy: final.detection.LowAccuracy,
	})
	if err != nil {
		finishStep(false, err.Error())
		return nil, fmt.Errorf("failed to build language detector: %w", err)
	}
	finishStep(true, "")

	filter, err := langid.NewFilter(classifier, settings.Language, settings.MinConfidence)
	if err != nil {
		return nil, err
	}

	tokenizer, err := tokenize.New(settings.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	observer.LogDetail("setup", "tokenizer "+tokenizer.Name())

	stop, err := stopwords.Resolve(settings.Language, final.stopWords.File, final.stopWords.Extra)
	if err != nil {
		return nil, err
	}
	observer.LogMetric("setup", "stop_words", stop.Len())

	formats, err := extractors.ParseFormats(settings.Formats)
	if err != nil {
		return nil, err
	}
	registry, err := extractors.NewRegistry(formats...)
	if err != nil {
		return nil, err
	}

	return core.NewProcessor(core.Options{
		Registry:        registry,
		Filter:          filter,
		Words:           tokenize.NewWordFilter(tokenizer, stop),
		ContinueOnError: settings.ContinueOnError,
		OnFileError: func(fe *core.FileError) {
			printWarning(stderr, fe.Error())
		},
		Observer: observer,
	})
}

func handleProfiles(cfg *config.Config, configPath string, out io.Writer) {
	if configPath == "" {
		fmt.Fprintln(out, "No configuration file found. Built-in profiles:")
	} else {
		fmt.Fprintf(out, "Available profiles in %s:\n", configPath)
	}
	for _, name := range cfg.ListProfiles() {
		profile := cfg.GetProfile(name)
		if profile.Description != "" {
			fmt.Fprintf(out, "  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}
}

func writeResult(output, result string, stdout io.Writer) error {
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	if output == "" {
		_, err := io.WriteString(stdout, result)
		return err
	}
	if err := os.WriteFile(output, []byte(result), 0600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}

func printWarning(w io.Writer, msg string) {
	color.New(color.FgYellow).Fprintf(w, "Warning: %s\n", msg)
}

// isFlagSet reports whether a flag was given on the command line
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
