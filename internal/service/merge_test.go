package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/models"
)

func TestClassifyIdentity(t *testing.T) {
	withRecords := []models.TestRecord{{ID: "t1"}}

	tests := []struct {
		name     string
		local    localState
		incoming models.Profile
		want     identity
	}{
		{
			name:     "equal ids",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}, tests: withRecords},
			incoming: models.Profile{Name: "Renamed", InstallationID: "a"},
			want:     identity{same: true},
		},
		{
			name:     "no incoming id falls back to name",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}, tests: withRecords},
			incoming: models.Profile{Name: "Alice"},
			want:     identity{same: true},
		},
		{
			name:     "no incoming id and another name",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}, tests: withRecords},
			incoming: models.Profile{Name: "Bob"},
			want:     identity{},
		},
		{
			name:     "no local id adopts incoming id on name match",
			local:    localState{profile: models.Profile{Name: "Alice"}, tests: withRecords},
			incoming: models.Profile{Name: "Alice", InstallationID: "b"},
			want:     identity{same: true, adoptID: true},
		},
		{
			name:     "different ids with local records and the same name",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}, tests: withRecords},
			incoming: models.Profile{Name: "Alice", InstallationID: "b"},
			want:     identity{same: true},
		},
		{
			name:     "different ids with local records and another name",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}, tests: withRecords},
			incoming: models.Profile{Name: "Alicia", InstallationID: "b"},
			want:     identity{},
		},
		{
			name:     "different ids on a pristine store with the same name",
			local:    localState{profile: models.Profile{Name: "Alice", InstallationID: "a"}},
			incoming: models.Profile{Name: "Alice", InstallationID: "b"},
			want:     identity{same: true, adoptID: true},
		},
		{
			name:     "different ids on a pristine store with another name",
			local:    localState{profile: models.Profile{Name: "Bob", InstallationID: "a"}},
			incoming: models.Profile{Name: "Alice", InstallationID: "b"},
			want:     identity{},
		},
		{
			name:     "pristine store without a name",
			local:    localState{},
			incoming: models.Profile{Name: "Alice", InstallationID: "b"},
			want:     identity{same: true, restore: true, adoptID: true},
		},
		{
			name:     "names are trimmed",
			local:    localState{profile: models.Profile{Name: " Alice "}, tests: withRecords},
			incoming: models.Profile{Name: "Alice"},
			want:     identity{same: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIdentity(tt.local, tt.incoming))
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	local := models.Profile{Name: "Alice", Gender: "f", Birthday: "1990-01-01"}

	t.Run("unset local fields are not conflicts", func(t *testing.T) {
		report := DetectConflicts(models.Profile{Name: "Alice"}, 0, 0, models.ExportDataset{
			Profile: &models.Profile{Name: "Alice", Gender: "f", Bio: "b"},
			Tests:   []models.TestRecord{{ID: "t1"}},
		})
		assert.False(t, report.HasConflicts())
	})

	t.Run("differing fields", func(t *testing.T) {
		report := DetectConflicts(local, 0, 0, models.ExportDataset{
			Profile: &models.Profile{Name: "Alice", Gender: "f", Birthday: "1991-02-02", ContactInfo: "x"},
		})
		assert.True(t, report.HasConflicts())
		assert.Equal(t, []models.FieldConflict{{Field: "birthday", Local: "1990-01-01", Incoming: "1991-02-02"}}, report.Fields)
	})

	t.Run("record counts", func(t *testing.T) {
		report := DetectConflicts(local, 2, 1, models.ExportDataset{
			Profile: &models.Profile{Name: "Alice"},
			Tests:   []models.TestRecord{{ID: "t1"}},
			Diary:   []models.DiaryEntry{{ID: "d1"}},
		})
		assert.True(t, report.HasConflicts())
		assert.Equal(t, 2, report.LocalTests)
		assert.Equal(t, 1, report.IncomingTests)
		assert.Empty(t, report.Fields)
	})

	t.Run("unselected collections are not compared", func(t *testing.T) {
		report := DetectConflicts(local, 5, 3, models.ExportDataset{Profile: &models.Profile{Name: "Alice"}})
		assert.False(t, report.HasConflicts())
	})
}

func TestSmartMerge_IsAdditive(t *testing.T) {
	local := localState{
		profile: models.Profile{Name: "Alice", Gender: "f", InstallationID: "a"},
		tests:   []models.TestRecord{{ID: "t1", Type: "local"}, {ID: "t2"}},
		diary:   []store.DiaryRecord{{Entry: models.DiaryEntry{ID: "d1"}}},
	}
	incoming := models.ExportDataset{
		Profile: &models.Profile{Name: "Alice", Gender: "m", Bio: "bio", InstallationID: "a"},
		Tests:   []models.TestRecord{{ID: "t1", Type: "incoming"}, {ID: "t3"}, {ID: "t3"}},
		Diary:   []models.DiaryEntry{{ID: "d2"}},
		Contacts: []models.ContactSnapshot{
			{ID: "c1", Name: "Carol"},
		},
	}

	plan := smartMerge(local, incoming, identity{same: true})

	assert.False(t, plan.replaceTests)
	assert.False(t, plan.replaceDiary)
	assert.Equal(t, []models.TestRecord{{ID: "t3"}}, plan.tests, "only new ids, local wins on shared ids")
	assert.Equal(t, []models.DiaryEntry{{ID: "d2"}}, plan.diary)
	assert.Len(t, plan.contacts, 1)
	assert.Equal(t, "f", plan.profile.Gender, "local value kept")
	assert.Equal(t, "bio", plan.profile.Bio, "unset local value filled")
	assert.Equal(t, []string{"bio"}, plan.profileSet)
	assert.Equal(t, "a", plan.profile.InstallationID)
}

func TestSmartMerge_AdoptsInstallationID(t *testing.T) {
	local := localState{profile: models.Profile{InstallationID: "fresh"}}
	incoming := models.ExportDataset{Profile: &models.Profile{Name: "Alice", InstallationID: "origin"}}

	plan := smartMerge(local, incoming, identity{same: true, restore: true, adoptID: true})
	assert.Equal(t, "Alice", plan.profile.Name)
	assert.Equal(t, "origin", plan.profile.InstallationID)
	assert.Contains(t, plan.profileSet, "name")
}

func TestOverwrite(t *testing.T) {
	local := localState{
		profile:  models.Profile{Name: "Alice", Gender: "f", Bio: "mine", InstallationID: "a"},
		tests:    []models.TestRecord{{ID: "t1"}},
		contacts: []models.ContactSnapshot{{ID: "c1"}},
	}
	incoming := models.ExportDataset{
		Profile:  &models.Profile{Name: "alice", Gender: "m", InstallationID: "b"},
		Tests:    []models.TestRecord{{ID: "t9"}},
		Contacts: []models.ContactSnapshot{{ID: "c1"}, {ID: "c2"}},
	}

	plan := overwrite(local, incoming, identity{same: true})

	assert.True(t, plan.replaceTests)
	assert.False(t, plan.replaceDiary, "diary was not in the package")
	assert.Equal(t, incoming.Tests, plan.tests)
	assert.Equal(t, "Alice", plan.profile.Name)
	assert.Equal(t, "a", plan.profile.InstallationID)
	assert.Equal(t, "m", plan.profile.Gender)
	assert.Empty(t, plan.profile.Bio)
	assert.ElementsMatch(t, []string{"gender", "bio"}, plan.profileSet)
	assert.Equal(t, []models.ContactSnapshot{{ID: "c2"}}, plan.contacts)
}

func TestMissingByID(t *testing.T) {
	known := map[string]struct{}{"a": {}}
	got := missingByID([]string{"a", "b", "", "b", ""}, known, func(s string) string { return s })
	assert.Equal(t, []string{"b", "", ""}, got)
}
