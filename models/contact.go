package models

// ContactSnapshot is an imported copy of another person's data.
//
// Several contacts may share Name; Remark is what tells them apart and is
// mandatory whenever a same-named contact is added as a new entry.
type ContactSnapshot struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Remark        string       `json:"remark,omitempty"`
	Tests         []TestRecord `json:"tests"`
	Diary         []DiaryEntry `json:"diary"`
	Profile       *Profile     `json:"profile"`
	ImportedAt    int64        `json:"importedAt"`
	SourceVersion string       `json:"sourceVersion"`
}

// DisplayName returns the name decorated with the remark, if any.
func (c ContactSnapshot) DisplayName() string {
	if c.Remark == "" {
		return c.Name
	}
	return c.Name + " (" + c.Remark + ")"
}
