// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package langid

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detection is the result of classifying a text blob
type Detection struct {
	// Language is the lower-case ISO 639-1 code, empty when unknown
	Language string
	// Confidence is the model's confidence in Language, in [0, 1]
	Confidence float64
}

// Known reports whether a language was identified
func (d Detection) Known() bool {
	return d.Language != ""
}

func (d Detection) String() string {
	if !d.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%s (%.2f)", d.Language, d.Confidence)
}

// Classifier identifies the language of a text
type Classifier interface {
	Classify(text string) Detection
}

// Settings configures the lingua detector
type Settings struct {
	// Languages restricts the candidate set (ISO 639-1 codes). Empty means
	// every language the model knows.
	Languages []string
	// Preload loads every candidate model up front instead of on demand
	Preload bool
	// LowAccuracy trades accuracy on short texts for speed and memory
	LowAccuracy bool
}

// LinguaClassifier wraps a lingua language detector. Build it once and
// reuse it; model loading dominates the cost of a classification.
type LinguaClassifier struct {
	detector lingua.LanguageDetector
}

// NewLinguaClassifier builds the detector described by settings
func NewLinguaClassifier(settings Settings) (*LinguaClassifier, error) {
	var builder lingua.LanguageDetectorBuilder
	if len(settings.Languages) == 0 {
		builder = lingua.NewLanguageDetectorBuilder().FromAllLanguages()
	} else {
		languages, err := parseLanguages(settings.Languages)
		if err != nil {
			return nil, err
		}
		// lingua refuses to build a detector with fewer than two languages
		if len(languages) < 2 {
			return nil, fmt.Errorf("at least two candidate languages are required, got %d", len(languages))
		}
		builder = lingua.NewLanguageDetectorBuilder().FromLanguages(languages...)
	}

	if settings.Preload {
		builder = builder.WithPreloadedLanguageModels()
	}
	if settings.LowAccuracy {
		builder = builder.WithLowAccuracyMode()
	}

	return &LinguaClassifier{detector: builder.Build()}, nil
}

// Classify returns the best-guess language and its confidence. Empty or
// unclassifiable text yields an unknown detection.
func (c *LinguaClassifier) Classify(text string) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{}
	}
	language, ok := c.detector.DetectLanguageOf(text)
	if !ok {
		return Detection{}
	}
	return Detection{
		Language:   strings.ToLower(language.IsoCode639_1().String()),
		Confidence: c.detector.ComputeLanguageConfidence(text, language),
	}
}

func parseLanguages(codes []string) ([]lingua.Language, error) {
	seen := make(map[lingua.Language]bool)
	var languages []lingua.Language
	for _, code := range codes {
		language, err := ParseLanguage(code)
		if err != nil {
			return nil, err
		}
		if !seen[language] {
			seen[language] = true
			languages = append(languages, language)
		}
	}
	return languages, nil
}

// ParseLanguage maps an ISO 639-1 code to a lingua language
func ParseLanguage(code string) (lingua.Language, error) {
	iso := lingua.GetIsoCode639_1FromValue(strings.ToUpper(strings.TrimSpace(code)))
	language := lingua.GetLanguageFromIsoCode639_1(iso)
	if language == lingua.Unknown {
		return lingua.Unknown, fmt.Errorf("unsupported language code %q", code)
	}
	return language, nil
}
