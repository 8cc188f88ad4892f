package models

// Selection describes what the user chose to put into an export package.
type Selection struct {
	// TestTypes limits exported tests to the listed quiz types. Ignored when
	// AllTests is set.
	TestTypes []string
	// AllTests exports every stored test regardless of type.
	AllTests bool
	Diary    bool
	Contacts bool
	Profile  bool
}

// WantsTests reports whether any test is requested.
func (s Selection) WantsTests() bool {
	return s.AllTests || len(s.TestTypes) > 0
}

// ExportResult is a finished package ready to be written to disk.
type ExportResult struct {
	FileName string
	Package  []byte
	Summary  CardSummary
}

// CardSummary is everything the cosmetic card renderer is allowed to see.
type CardSummary struct {
	Name         string
	TestCount    int
	DiaryCount   int
	ContactCount int
	TestTypes    []string
	ExportedAt   int64
}
