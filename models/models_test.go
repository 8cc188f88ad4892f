package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictReport_HasConflicts(t *testing.T) {
	tests := []struct {
		name   string
		report ConflictReport
		want   bool
	}{
		{name: "nothing", report: ConflictReport{}, want: false},
		{name: "field differs", report: ConflictReport{Fields: []FieldConflict{{Field: "bio"}}}, want: true},
		{name: "empty local tests never conflict", report: ConflictReport{IncomingTests: 5}, want: false},
		{name: "test counts differ", report: ConflictReport{LocalTests: 1, IncomingTests: 2}, want: true},
		{name: "equal counts", report: ConflictReport{LocalTests: 2, IncomingTests: 2, LocalDiary: 1, IncomingDiary: 1}, want: false},
		{name: "diary counts differ", report: ConflictReport{LocalDiary: 3, IncomingDiary: 0}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.HasConflicts())
		})
	}
}

func TestContactSnapshot_DisplayName(t *testing.T) {
	assert.Equal(t, "Alice", ContactSnapshot{Name: "Alice"}.DisplayName())
	assert.Equal(t, "Alice (work)", ContactSnapshot{Name: "Alice", Remark: "work"}.DisplayName())
}

func TestSessionRecoveryToken(t *testing.T) {
	token := NewSessionRecoveryToken("пароль-123")
	assert.NotContains(t, string(token), "123")

	got, err := token.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "пароль-123", got)

	_, err = SessionRecoveryToken("%%%").Reveal()
	assert.Error(t, err)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now}

	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestExportDataset_SelectionSurvivesJSON(t *testing.T) {
	raw, err := json.Marshal(ExportDataset{Tests: []TestRecord{}, Profile: &Profile{Name: "Alice"}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tests":[]`)
	assert.NotContains(t, string(raw), `"diary"`)

	var back ExportDataset
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.HasTests())
	assert.False(t, back.HasDiary())
	assert.False(t, back.HasContacts())
}

func TestSelection_WantsTests(t *testing.T) {
	assert.False(t, Selection{Diary: true}.WantsTests())
	assert.True(t, Selection{AllTests: true}.WantsTests())
	assert.True(t, Selection{TestTypes: []string{"mbti"}}.WantsTests())
}

func TestProfile_FieldAccess(t *testing.T) {
	var p Profile
	for _, f := range ComparableFields {
		p.Set(f, string(f)+"-value")
	}
	for _, f := range ComparableFields {
		assert.Equal(t, string(f)+"-value", p.Get(f))
	}
	assert.False(t, (*Profile)(nil).HasName())
	assert.False(t, (&Profile{Name: "  "}).HasName())
}

func TestAppBuildInfo_PackageVersion(t *testing.T) {
	assert.Equal(t, "2.0.0", NewAppBuildInfo(" 2.0.0 ", "", "").PackageVersion("1.0.0"))
	assert.Equal(t, "1.0.0", NewAppBuildInfo("", "", "").PackageVersion("1.0.0"))
	assert.Equal(t, "1.0.0", NewAppBuildInfo("N/A", "", "").PackageVersion("1.0.0"))
}
