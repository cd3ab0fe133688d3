// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"time"
)

// StandardObserver records pipeline operations (extraction, language
// detection, tokenization) for every component
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// New returns a metrics-level observer, or a debug observer with step traces
// when debug is set
func New(debug bool, writer io.Writer) *StandardObserver {
	if !debug {
		return NewStandardObserver(ObservabilityMetrics, writer)
	}
	debugObs := NewDebugObserver(writer)
	observer := debugObs.StandardObserver
	observer.DebugObserver = debugObs
	return observer
}

// Level returns the observer's level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}

		o.LogOperation(data)
	}
}

// StartStep begins a traced step. Outside debug mode the returned function
// is a no-op.
func (o *StandardObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	if o.DebugObserver == nil {
		return func(bool, string) {}
	}
	return o.DebugObserver.StartStep(component, step, filePath)
}

// LogDetail forwards a detail line to the debug observer, if any
func (o *StandardObserver) LogDetail(component, detail string) {
	if o.DebugObserver != nil {
		o.DebugObserver.LogDetail(component, detail)
	}
}

// LogMetric forwards a metric to the debug observer, if any
func (o *StandardObserver) LogMetric(component, metric string, value interface{}) {
	if o.DebugObserver != nil {
		o.DebugObserver.LogMetric(component, metric, value)
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}

	data.RequestID = "req-" + time.Now().Format("20060102-150405")

	// Only log JSON in debug mode
	if o.level == ObservabilityDebug {
		json.NewEncoder(o.writer).Encode(data)
	}
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	RequestID     string                 `json:"request_id"`
	FilePath      string                 `json:"file_path,omitempty"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ContentLength int                    `json:"content_length,omitempty"`
	Language      string                 `json:"language,omitempty"`
	WordCount     int                    `json:"word_count,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
