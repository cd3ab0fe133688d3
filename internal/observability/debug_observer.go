// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DebugObserver traces the scan pipeline step by step: one nested block per
// file with the extractor, language detection and tokenizer steps inside it
type DebugObserver struct {
	*StandardObserver
	indent int
}

// NewDebugObserver creates a debug observer with step-by-step logging
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
}

func (d *DebugObserver) line(format string, args ...interface{}) {
	fmt.Fprintf(d.writer, strings.Repeat("  ", d.indent)+format+"\n", args...)
}

// StartStep begins a processing step with indentation
func (d *DebugObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	start := time.Now()
	if filePath != "" {
		d.line("🔄 %s: %s (%s)", component, step, filePath)
	} else {
		d.line("🔄 %s: %s", component, step)
	}
	d.indent++

	return func(success bool, details string) {
		if d.indent > 0 {
			d.indent--
		}
		ms := time.Since(start).Milliseconds()
		if success {
			d.line("✅ %s: %s completed (%dms) %s", component, step, ms, details)
		} else {
			d.line("❌ %s: %s failed (%dms) %s", component, step, ms, details)
		}
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	d.line("   → %s: %s", component, detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	d.line("   📊 %s: %s = %v", component, metric, value)
}
