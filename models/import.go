package models

// ImportMode is the user's declared intent for an incoming package.
type ImportMode int

const (
	// ImportModeSelf restores the user's own data from another device.
	ImportModeSelf ImportMode = iota + 1
	// ImportModeContact adds the package owner to the contact network.
	ImportModeContact
)

func (m ImportMode) String() string {
	switch m {
	case ImportModeSelf:
		return "self"
	case ImportModeContact:
		return "contact"
	}
	return "unknown"
}

// SelfResolution is the user's answer to a self-restore conflict.
type SelfResolution int

const (
	SelfCancel SelfResolution = iota
	// SelfSmartMerge unions records and only fills locally unset fields.
	SelfSmartMerge
	// SelfOverwrite discards local state in favour of the import.
	SelfOverwrite
)

func (r SelfResolution) String() string {
	switch r {
	case SelfCancel:
		return "cancel"
	case SelfSmartMerge:
		return "smart-merge"
	case SelfOverwrite:
		return "overwrite"
	}
	return "unknown"
}

// CollisionAction is the user's answer to a contact name collision.
type CollisionAction int

const (
	CollisionCancel CollisionAction = iota
	// CollisionOverwrite replaces the payload of an existing contact.
	CollisionOverwrite
	// CollisionAddNew stores a second contact with the same name.
	CollisionAddNew
)

func (a CollisionAction) String() string {
	switch a {
	case CollisionCancel:
		return "cancel"
	case CollisionOverwrite:
		return "overwrite-existing"
	case CollisionAddNew:
		return "add-new"
	}
	return "unknown"
}

// CollisionResolution pairs a CollisionAction with its parameters.
type CollisionResolution struct {
	Action CollisionAction
	// TargetID is the contact to overwrite (CollisionOverwrite only).
	TargetID string
	// Remark disambiguates the new contact (CollisionAddNew only, mandatory).
	Remark string
}

// FieldConflict describes one differing value between local and incoming data.
type FieldConflict struct {
	Field    string
	Local    string
	Incoming string
}

// ConflictReport lists every difference found on the self-restore path.
type ConflictReport struct {
	Fields        []FieldConflict
	LocalTests    int
	IncomingTests int
	LocalDiary    int
	IncomingDiary int
}

// HasConflicts reports whether the user has to choose a resolution. An empty
// local collection never conflicts: merging into it cannot lose anything.
func (r ConflictReport) HasConflicts() bool {
	return len(r.Fields) > 0 ||
		(r.LocalTests > 0 && r.LocalTests != r.IncomingTests) ||
		(r.LocalDiary > 0 && r.LocalDiary != r.IncomingDiary)
}

// ImportPath is the branch the reconciler ended up on.
type ImportPath string

const (
	PathSelf    ImportPath = "self"
	PathContact ImportPath = "contact"
)

// ImportOutcome reports what an import changed.
type ImportOutcome struct {
	Path        ImportPath
	Resolution  string
	ContactID   string
	Format      string
	Signed      bool
	TestsAdded  int
	DiaryAdded  int
	ProfileSet  []string
	ContactName string
}

// ImportPreview describes a package without touching storage.
type ImportPreview struct {
	Format      string
	Signed      bool
	ProfileName string
	Version     string
	ExportedAt  int64
	Tests       int
	Diary       int
	Contacts    int
}
