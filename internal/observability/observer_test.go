// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MetricsLevelIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	observer := New(false, &buf)

	assert.Equal(t, ObservabilityMetrics, observer.Level())
	assert.Nil(t, observer.DebugObserver)

	done := observer.StartStep("extractor", "extract", "a.docx")
	done(true, "")
	observer.LogDetail("extractor", "detail")
	observer.StartTiming("extractor", "extract", "a.docx")(true, nil)

	assert.Empty(t, buf.String())
}

func TestNew_DebugWritesStepsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	observer := New(true, &buf)
	require.NotNil(t, observer.DebugObserver)

	done := observer.StartStep("extractor", "extract", "deck.pptx")
	observer.LogDetail("langid", "ja (0.98)")
	observer.LogMetric("tokenize", "words", 3)
	done(true, "12 chars")

	out := buf.String()
	assert.Contains(t, out, "extractor: extract (deck.pptx)")
	assert.Contains(t, out, "  ")
	assert.Contains(t, out, "langid: ja (0.98)")
	assert.Contains(t, out, "tokenize: words = 3")
	assert.Contains(t, out, "extract completed")

	buf.Reset()
	observer.LogOperation(StandardObservabilityData{Component: "core", Operation: "scan", Success: true, WordCount: 4})
	var record StandardObservabilityData
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &record))
	assert.Equal(t, "core", record.Component)
	assert.Equal(t, 4, record.WordCount)
	assert.True(t, strings.HasPrefix(record.RequestID, "req-"))
}

func TestDebugObserver_FailedStep(t *testing.T) {
	var buf bytes.Buffer
	debug := NewDebugObserver(&buf)

	done := debug.StartStep("extractor", "extract", "bad.docx")
	done(false, "zip: not a valid zip file")

	assert.Contains(t, buf.String(), "extract failed")
	assert.Contains(t, buf.String(), "not a valid zip file")
}

func TestOffLevelWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	observer := NewStandardObserver(ObservabilityOff, &buf)
	observer.LogOperation(StandardObservabilityData{Component: "core"})
	assert.Empty(t, buf.String())
}
