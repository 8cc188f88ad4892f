package service

import (
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

// sealDiary encrypts the content of every entry with u.
func sealDiary(u *vault.Unlocked, entries []models.DiaryEntry) ([]store.DiaryRecord, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if u == nil {
		return nil, vault.ErrLocked
	}

	out := make([]store.DiaryRecord, 0, len(entries))
	for _, e := range entries {
		f, err := u.EncryptField(e.Content)
		if err != nil {
			return nil, fmt.Errorf("encrypt diary entry %s: %w", e.ID, err)
		}
		e.Content, _ = f.Columns()
		out = append(out, store.DiaryRecord{Entry: e, ContentEncrypted: true})
	}
	return out, nil
}

// revealDiary decrypts stored diary rows. Plaintext rows need no handle.
func revealDiary(u *vault.Unlocked, records []store.DiaryRecord) ([]models.DiaryEntry, error) {
	out := make([]models.DiaryEntry, 0, len(records))
	for _, rec := range records {
		content, err := vault.StoredField(rec.Entry.Content, rec.ContentEncrypted).Reveal(u)
		if err != nil {
			return nil, fmt.Errorf("decrypt diary entry %s: %w", rec.Entry.ID, err)
		}
		e := rec.Entry
		e.Content = content
		out = append(out, e)
	}
	return out, nil
}
