package service

import (
	"strings"

	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/models"
)

// localState is what the reconciler reads before deciding anything.
type localState struct {
	profile  models.Profile
	tests    []models.TestRecord
	diary    []store.DiaryRecord
	contacts []models.ContactSnapshot
}

func (l localState) pristine() bool {
	return len(l.tests) == 0 && len(l.diary) == 0
}

// identity is the result of comparing the local profile with an incoming one.
type identity struct {
	same bool
	// restore marks a match made only because the local store is pristine
	// and unnamed. It never turns a contact import into a self restore.
	restore bool
	// adoptID is set when the local installation should take over the
	// incoming installation id.
	adoptID bool
}

// classifyIdentity decides whether incoming is the local user.
//
// Equal installation ids mean the same person. Otherwise equal non-empty
// names do: every installation generates its own id, so the same person on
// a second device carries another id. A pristine local store (no tests, no
// diary) adopts the incoming id, and one without a name accepts any
// incoming profile as a restore onto a new installation.
func classifyIdentity(local localState, incoming models.Profile) identity {
	localID, incomingID := local.profile.InstallationID, incoming.InstallationID
	localName, incomingName := strings.TrimSpace(local.profile.Name), strings.TrimSpace(incoming.Name)

	switch {
	case localID != "" && incomingID != "" && localID == incomingID:
		return identity{same: true}
	case local.pristine() && localName == "":
		return identity{same: true, restore: true, adoptID: incomingID != ""}
	case localName == "" || localName != incomingName:
		return identity{}
	}
	adopt := incomingID != "" && (localID == "" || local.pristine())
	return identity{same: true, adoptID: adopt}
}

// DetectConflicts compares the local profile and record counts with an
// incoming dataset. A profile field conflicts only when both sides have a
// value and the values differ: an unset local field is simply filled.
func DetectConflicts(local models.Profile, localTests, localDiary int, incoming models.ExportDataset) models.ConflictReport {
	report := models.ConflictReport{
		LocalTests:    localTests,
		IncomingTests: len(incoming.Tests),
		LocalDiary:    localDiary,
		IncomingDiary: len(incoming.Diary),
	}
	if !incoming.HasTests() {
		report.IncomingTests = localTests
	}
	if !incoming.HasDiary() {
		report.IncomingDiary = localDiary
	}
	if incoming.Profile == nil {
		return report
	}

	for _, f := range models.ComparableFields {
		l, in := local.Get(f), incoming.Profile.Get(f)
		if l != "" && in != "" && l != in {
			report.Fields = append(report.Fields, models.FieldConflict{Field: string(f), Local: l, Incoming: in})
		}
	}
	return report
}

// selfPlan is the complete set of writes of a self restore.
type selfPlan struct {
	profile models.Profile
	// replace drops the local tests and diary before inserting.
	replaceTests bool
	replaceDiary bool
	tests        []models.TestRecord
	diary        []models.DiaryEntry
	contacts     []models.ContactSnapshot
	// replacedContacts overwrite stored contacts with the same id.
	replacedContacts []models.ContactSnapshot
	profileSet       []string
}

// smartMerge unions tests, diary and contacts by id and fills locally unset
// profile fields. Records present on both sides keep the local version and
// nothing local is ever removed.
func smartMerge(local localState, incoming models.ExportDataset, who identity) selfPlan {
	plan := selfPlan{profile: local.profile}

	if plan.profile.Name == "" {
		plan.profile.Name = incoming.Profile.Name
		plan.profileSet = append(plan.profileSet, "name")
	}
	for _, f := range models.ComparableFields {
		if plan.profile.Get(f) == "" && incoming.Profile.Get(f) != "" {
			plan.profile.Set(f, incoming.Profile.Get(f))
			plan.profileSet = append(plan.profileSet, string(f))
		}
	}
	if who.adoptID {
		plan.profile.InstallationID = incoming.Profile.InstallationID
	}

	testIDs := make(map[string]struct{}, len(local.tests))
	for _, t := range local.tests {
		testIDs[t.ID] = struct{}{}
	}
	plan.tests = missingByID(incoming.Tests, testIDs, func(t models.TestRecord) string { return t.ID })

	diaryIDs := make(map[string]struct{}, len(local.diary))
	for _, d := range local.diary {
		diaryIDs[d.Entry.ID] = struct{}{}
	}
	plan.diary = missingByID(incoming.Diary, diaryIDs, func(d models.DiaryEntry) string { return d.ID })

	plan.contacts = mergeContacts(local.contacts, incoming.Contacts)
	return plan
}

// overwrite replaces the local profile, tests and diary with the import.
// Collections the package does not carry are left alone, and the local
// name and installation id survive unless the local side had none.
func overwrite(local localState, incoming models.ExportDataset, who identity) selfPlan {
	plan := selfPlan{
		profile:      *incoming.Profile,
		replaceTests: incoming.HasTests(),
		replaceDiary: incoming.HasDiary(),
		tests:        incoming.Tests,
		diary:        incoming.Diary,
		contacts:     mergeContacts(local.contacts, incoming.Contacts),
	}
	if local.profile.Name != "" {
		plan.profile.Name = local.profile.Name
	}
	if !who.adoptID {
		plan.profile.InstallationID = local.profile.InstallationID
	}
	for _, f := range models.ComparableFields {
		if local.profile.Get(f) != plan.profile.Get(f) {
			plan.profileSet = append(plan.profileSet, string(f))
		}
	}
	return plan
}

// mergeContacts returns the incoming contacts whose id is not stored yet.
func mergeContacts(local, incoming []models.ContactSnapshot) []models.ContactSnapshot {
	ids := make(map[string]struct{}, len(local))
	for _, c := range local {
		ids[c.ID] = struct{}{}
	}
	return missingByID(incoming, ids, func(c models.ContactSnapshot) string { return c.ID })
}

// missingByID returns the items whose id is not in known. Items without an
// id are always returned. Duplicates within items are dropped.
func missingByID[T any](items []T, known map[string]struct{}, id func(T) string) []T {
	var out []T
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := id(item)
		if key != "" {
			if _, ok := known[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

// indistinguishable returns the contacts a user could not tell apart from c:
// same name and same remark.
func indistinguishable(contacts []models.ContactSnapshot, c models.ContactSnapshot) []models.ContactSnapshot {
	name, remark := strings.TrimSpace(c.Name), strings.TrimSpace(c.Remark)
	var out []models.ContactSnapshot
	for _, other := range contacts {
		if strings.TrimSpace(other.Name) == name && strings.TrimSpace(other.Remark) == remark {
			out = append(out, other)
		}
	}
	return out
}
