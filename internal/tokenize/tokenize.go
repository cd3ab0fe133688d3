// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package tokenize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"lexiscan/internal/stopwords"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Tokenizer splits text into word tokens
type Tokenizer interface {
	// Tokenize returns the tokens of text in order
	Tokenize(text string) []string

	// Name identifies the tokenizer in debug output
	Name() string
}

// New returns the tokenizer suited to a language. Japanese is segmented
// morphologically; everything else uses Unicode word boundaries.
func New(lang string) (Tokenizer, error) {
	switch strings.ToLower(lang) {
	case "ja":
		return NewJapaneseTokenizer()
	default:
		return NewUnicodeTokenizer(), nil
	}
}

// JapaneseTokenizer segments Japanese-script spans with the kagome
// morphological analyzer and the IPA dictionary. Other spans (Latin words,
// numbers, identifiers such as R2D2) are split on Unicode word boundaries so
// they stay whole.
type JapaneseTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewJapaneseTokenizer loads the IPA dictionary. This is expensive and
// should be done once per process.
func NewJapaneseTokenizer() (*JapaneseTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("error creating japanese tokenizer: %w", err)
	}
	return &JapaneseTokenizer{t: t}, nil
}

func (j *JapaneseTokenizer) Name() string {
	return "kagome-ipa"
}

func (j *JapaneseTokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, run := range scriptRuns(text) {
		if run.japanese {
			tokens = append(tokens, j.t.Wakati(run.text)...)
		} else {
			tokens = append(tokens, segmentWords(run.text)...)
		}
	}
	return tokens
}

// run is a maximal span of text that is either all Japanese script or
// contains none
type run struct {
	text     string
	japanese bool
}

func scriptRuns(text string) []run {
	var (
		runs  []run
		start int
		cur   bool
	)
	for i, r := range text {
		ja := isJapaneseScript(r)
		if i > start && ja != cur {
			runs = append(runs, run{text: text[start:i], japanese: cur})
			start = i
		}
		cur = ja
	}
	if start < len(text) {
		runs = append(runs, run{text: text[start:], japanese: cur})
	}
	return runs
}

// isJapaneseScript reports kanji, kana and the marks used inside Japanese words
func isJapaneseScript(r rune) bool {
	switch r {
	case 'ー', '々', '〆', 'ヶ':
		return true
	}
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}

// UnicodeTokenizer splits on UAX #29 word boundaries, keeping hyphenated
// compounds such as e-mail as one token
type UnicodeTokenizer struct{}

func NewUnicodeTokenizer() *UnicodeTokenizer {
	return &UnicodeTokenizer{}
}

func (u *UnicodeTokenizer) Name() string {
	return "uax29"
}

func (u *UnicodeTokenizer) Tokenize(text string) []string {
	return segmentWords(text)
}

// segmentWords returns the UAX #29 segments of text with word segments that
// are joined by a single hyphen merged back together
func segmentWords(text string) []string {
	var segments []string
	iter := words.FromString(text)
	for iter.Next() {
		segments = append(segments, iter.Value())
	}

	var tokens []string
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if isHyphen(seg) && len(tokens) > 0 && i+1 < len(segments) &&
			endsWordish(tokens[len(tokens)-1]) && startsWordish(segments[i+1]) {
			tokens[len(tokens)-1] += seg + segments[i+1]
			i++
			continue
		}
		tokens = append(tokens, seg)
	}
	return tokens
}

func isHyphen(s string) bool {
	switch s {
	case "-", "\u2010", "\u2011":
		return true
	}
	return false
}

func startsWordish(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func endsWordish(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsAlpha reports whether token is non-empty and made only of letters, in
// any script
func IsAlpha(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// WordFilter turns accepted text into the words that get counted
type WordFilter struct {
	tokenizer Tokenizer
	stop      stopwords.Set
}

// NewWordFilter creates a filter. A nil stop-word set removes nothing.
func NewWordFilter(t Tokenizer, stop stopwords.Set) *WordFilter {
	if stop == nil {
		stop = make(stopwords.Set)
	}
	return &WordFilter{tokenizer: t, stop: stop}
}

// Words tokenizes text and keeps alphabetic tokens that are not stop-words
func (w *WordFilter) Words(text string) []string {
	var kept []string
	for _, token := range w.tokenizer.Tokenize(text) {
		if !IsAlpha(token) {
			continue
		}
		if w.stop.Contains(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

// Tokenizer exposes the underlying tokenizer
func (w *WordFilter) Tokenizer() Tokenizer {
	return w.tokenizer
}
