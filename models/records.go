package models

import "encoding/json"

// TestRecord is a finished self-assessment produced by the quiz engine.
// Result and Analysis are opaque: scoring and AI analysis happen elsewhere.
type TestRecord struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Result      json.RawMessage `json:"result,omitempty"`
	Analysis    string          `json:"analysis,omitempty"`
	CompletedAt int64           `json:"completedAt"`
}

// DiaryEntry is a single diary note. Content is the sensitive part and is
// the only field stored encrypted on the device.
type DiaryEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Mood      string `json:"mood,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}
