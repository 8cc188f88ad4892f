// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// Profile is the local user's (or a contact's) personal card.
//
// Name is the identity anchor: export refuses to run without it and import
// uses it to decide between self restore and contact import whenever the
// incoming profile carries no InstallationID.
type Profile struct {
	// Name is the display name and the human-readable identity key.
	Name string `json:"name"`

	// Gender is optional free-form text.
	Gender string `json:"gender,omitempty"`

	// Birthday is stored as entered (usually YYYY-MM-DD).
	Birthday string `json:"birthday,omitempty"`

	// ContactInfo is optional free-form text (email, phone, messenger).
	ContactInfo string `json:"contactInfo,omitempty"`

	// Bio is a short free-form self description.
	Bio string `json:"bio,omitempty"`

	// InstallationID is the stable opaque id of the installation that
	// produced the profile. Empty for packages written by older versions.
	InstallationID string `json:"installationId,omitempty"`
}

// HasName reports whether the identity anchor is set.
func (p *Profile) HasName() bool {
	return p != nil && strings.TrimSpace(p.Name) != ""
}

// ProfileField names a comparable profile attribute.
type ProfileField string

const (
	FieldGender      ProfileField = "gender"
	FieldBirthday    ProfileField = "birthday"
	FieldContactInfo ProfileField = "contactInfo"
	FieldBio         ProfileField = "bio"
)

// ComparableFields lists the profile attributes checked for conflicts on
// self restore. Name is not listed: it is the identity key, not data.
var ComparableFields = []ProfileField{FieldGender, FieldBirthday, FieldContactInfo, FieldBio}

// Get returns the value of the given comparable field.
func (p Profile) Get(f ProfileField) string {
	switch f {
	case FieldGender:
		return p.Gender
	case FieldBirthday:
		return p.Birthday
	case FieldContactInfo:
		return p.ContactInfo
	case FieldBio:
		return p.Bio
	}
	return ""
}

// Set assigns the value of the given comparable field.
func (p *Profile) Set(f ProfileField, v string) {
	switch f {
	case FieldGender:
		p.Gender = v
	case FieldBirthday:
		p.Birthday = v
	case FieldContactInfo:
		p.ContactInfo = v
	case FieldBio:
		p.Bio = v
	}
}
