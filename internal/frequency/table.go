// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package frequency

import (
	"sort"
)

// Table maps a word to the number of times it was seen across a scan.
type Table map[string]int

// Entry is a single word/count pair
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// New creates an empty table
func New() Table {
	return make(Table)
}

// Add increments the count of every word, starting new words at 1
func (t Table) Add(words ...string) {
	for _, word := range words {
		t[word]++
	}
}

// Merge adds every count of other into t
func (t Table) Merge(other Table) {
	for word, count := range other {
		t[word] += count
	}
}

// Total returns the number of word occurrences recorded
func (t Table) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Entries returns the table sorted by count (descending), ties broken by word
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for word, count := range t {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Top returns the n most frequent entries. n <= 0 returns every entry.
func (t Table) Top(n int) []Entry {
	entries := t.Entries()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Limit returns a new table holding only the n most frequent words.
// n <= 0 returns a copy of the whole table.
func (t Table) Limit(n int) Table {
	limited := make(Table, len(t))
	for _, entry := range t.Top(n) {
		limited[entry.Word] = entry.Count
	}
	return limited
}
