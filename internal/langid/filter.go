// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package langid

import (
	"fmt"
	"strings"
)

// Filter accepts only text classified as the target language
type Filter struct {
	classifier    Classifier
	target        string
	minConfidence float64
}

// NewFilter creates a language filter. minConfidence of 0 accepts any
// detection of the target language.
func NewFilter(classifier Classifier, target string, minConfidence float64) (*Filter, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return nil, fmt.Errorf("target language cannot be empty")
	}
	if minConfidence < 0 || minConfidence > 1 {
		return nil, fmt.Errorf("minimum confidence must be between 0 and 1, got %v", minConfidence)
	}
	return &Filter{
		classifier:    classifier,
		target:        target,
		minConfidence: minConfidence,
	}, nil
}

// Target returns the target language code
func (f *Filter) Target() string {
	return f.target
}

// Accept classifies text and reports whether it is in the target language
func (f *Filter) Accept(text string) (Detection, bool) {
	detection := f.classifier.Classify(text)
	if detection.Language != f.target {
		return detection, false
	}
	if detection.Confidence < f.minConfidence {
		return detection, false
	}
	return detection, true
}
