// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ExportDataset is the plaintext document carried inside an export package.
//
// Every array is independent. A nil slice means "not selected for export"
// and is omitted from JSON (omitzero); a selected but empty collection is written as [].
type ExportDataset struct {
	Tests      []TestRecord      `json:"tests,omitzero"`
	Diary      []DiaryEntry      `json:"diary,omitzero"`
	Contacts   []ContactSnapshot `json:"contacts,omitzero"`
	Profile    *Profile          `json:"profile"`
	ExportedAt int64             `json:"exportedAt"`
	Version    string            `json:"version"`
}

// HasTests reports whether tests were selected for export.
func (d ExportDataset) HasTests() bool { return d.Tests != nil }

// HasDiary reports whether the diary was selected for export.
func (d ExportDataset) HasDiary() bool { return d.Diary != nil }

// HasContacts reports whether contacts were selected for export.
func (d ExportDataset) HasContacts() bool { return d.Contacts != nil }
