package store

import "github.com/MKhiriev/go-myself-vault/internal/logger"

// Repositories groups every repository bound to the same DBTX, which is
// either the database handle or one open transaction.
type Repositories struct {
	Settings SettingsRepository
	Profile  ProfileRepository
	Tests    TestRepository
	Diary    DiaryRepository
	Contacts ContactRepository
	Sessions SessionRepository
}

func newRepositories(db DBTX, log *logger.Logger) *Repositories {
	return &Repositories{
		Settings: NewSettingsRepository(db, log),
		Profile:  NewProfileRepository(db, log),
		Tests:    NewTestRepository(db, log),
		Diary:    NewDiaryRepository(db, log),
		Contacts: NewContactRepository(db, log),
		Sessions: NewSessionRepository(db, log),
	}
}
