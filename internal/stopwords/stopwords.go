// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package stopwords provides per-language stop-word sets. Lists for the
// bundled languages are embedded in the binary; a list can also be read from
// a file so that any target language can be supported.
package stopwords

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed data/*.txt
var bundled embed.FS

// ErrNoStopWords is returned when no stop-word list exists for a language
var ErrNoStopWords = errors.New("no stop-word list for language")

// Set is a collection of stop-words matched by exact string comparison
type Set map[string]struct{}

// Contains reports whether word is a stop-word
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Add inserts words into the set, ignoring blanks
func (s Set) Add(words ...string) {
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word != "" {
			s[word] = struct{}{}
		}
	}
}

// Len returns the number of stop-words
func (s Set) Len() int {
	return len(s)
}

// Load returns the bundled stop-word set for an ISO 639-1 language code
func Load(lang string) (Set, error) {
	name := "data/" + strings.ToLower(lang) + ".txt"
	f, err := bundled.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNoStopWords, lang)
		}
		return nil, fmt.Errorf("error opening bundled stop-words for %q: %w", lang, err)
	}
	defer f.Close()

	return Parse(f)
}

// LoadFile reads a stop-word list from disk
func LoadFile(path string) (Set, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error opening stop-word file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads one word per line. Blank lines and lines starting with '#'
// are ignored.
func Parse(r io.Reader) (Set, error) {
	set := make(Set)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading stop-words: %w", err)
	}
	return set, nil
}

// Languages lists the language codes with a bundled stop-word list
func Languages() []string {
	entries, err := bundled.ReadDir("data")
	if err != nil {
		return nil
	}
	var langs []string
	for _, entry := range entries {
		langs = append(langs, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(langs)
	return langs
}

// Resolve builds the stop-word set for a scan. A non-empty file replaces the
// bundled list; extra words are added on top of whichever list was used.
func Resolve(lang, file string, extra []string) (Set, error) {
	var (
		set Set
		err error
	)
	if file != "" {
		set, err = LoadFile(file)
	} else {
		set, err = Load(lang)
	}
	if err != nil {
		return nil, err
	}
	set.Add(extra...)
	return set, nil
}
