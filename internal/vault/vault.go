// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
)

// Settings keys owned by the vault.
const (
	SettingSalt   = "vault.salt"
	SettingCanary = "vault.canary"
)

// canaryValue is the constant sealed into the canary. The canary never
// holds user data.
const canaryValue = "VERIFY_OK"

type vault struct {
	storage  store.Storage
	keyChain crypto.KeyChain
	logger   *logger.Logger
}

// NewVault returns a [Vault] persisting its salt and canary through storage.
func NewVault(storage store.Storage, keyChain crypto.KeyChain, log *logger.Logger) Vault {
	return &vault{
		storage:  storage,
		keyChain: keyChain,
		logger:   log,
	}
}

func (v *vault) IsInitialized(ctx context.Context) (bool, error) {
	canary, err := v.storage.Repositories().Settings.Get(ctx, SettingCanary)
	if err != nil {
		return false, fmt.Errorf("read canary: %w", err)
	}
	return canary != nil, nil
}

func (v *vault) SetPassword(ctx context.Context, password string) (*Unlocked, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	initialized, err := v.IsInitialized(ctx)
	if err != nil {
		return nil, err
	}
	if initialized {
		return nil, ErrAlreadyInitialized
	}

	settings := v.storage.Repositories().Settings
	salt, err := settings.Get(ctx, SettingSalt)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	// nil salt makes DeriveKeys generate the installation salt
	keys, err := v.keyChain.DeriveKeys(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive keys: %w", err)
	}

	canary, err := v.keyChain.Seal([]byte(canaryValue), keys)
	if err != nil {
		keys.Wipe()
		return nil, fmt.Errorf("seal canary: %w", err)
	}

	err = v.storage.WithTx(ctx, func(ctx context.Context, tx *store.Repositories) error {
		if salt == nil {
			if err := tx.Settings.Set(ctx, SettingSalt, keys.Salt); err != nil {
				return err
			}
		}
		return tx.Settings.Set(ctx, SettingCanary, canary)
	})
	if err != nil {
		keys.Wipe()
		v.logger.Err(err).Str("func", "vault.SetPassword").Msg("failed to persist salt and canary")
		return nil, fmt.Errorf("persist canary: %w", err)
	}

	v.logger.Info().Str("func", "vault.SetPassword").Bool("new_salt", salt == nil).Msg("vault password set")
	return newUnlocked(v.keyChain, keys), nil
}

func (v *vault) VerifyPassword(ctx context.Context, password string) bool {
	keys, err := v.checkCanary(ctx, password)
	if err != nil {
		return false
	}
	keys.Wipe()
	return true
}

func (v *vault) Unlock(ctx context.Context, password string) (*Unlocked, error) {
	keys, err := v.checkCanary(ctx, password)
	if err != nil {
		return nil, err
	}
	return newUnlocked(v.keyChain, keys), nil
}

func (v *vault) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*Unlocked, error) {
	if newPassword == "" {
		return nil, ErrEmptyPassword
	}

	oldKeys, err := v.checkCanary(ctx, oldPassword)
	if err != nil {
		return nil, err
	}
	oldHandle := newUnlocked(v.keyChain, oldKeys)
	defer oldHandle.Lock()

	newKeys, err := v.keyChain.DeriveKeys(newPassword, oldKeys.Salt)
	if err != nil {
		return nil, fmt.Errorf("derive keys: %w", err)
	}
	newHandle := newUnlocked(v.keyChain, newKeys)

	canary, err := v.keyChain.Seal([]byte(canaryValue), newKeys)
	if err != nil {
		newHandle.Lock()
		return nil, fmt.Errorf("seal canary: %w", err)
	}

	var reencrypted int
	err = v.storage.WithTx(ctx, func(ctx context.Context, tx *store.Repositories) error {
		records, err := tx.Diary.List(ctx)
		if err != nil {
			return err
		}

		for i, rec := range records {
			if !rec.ContentEncrypted {
				continue
			}
			plain, err := oldHandle.DecryptField(StoredField(rec.Entry.Content, true))
			if err != nil {
				return fmt.Errorf("diary %s: %w", rec.Entry.ID, err)
			}
			f, err := newHandle.EncryptField(plain)
			if err != nil {
				return err
			}
			records[i].Entry.Content, records[i].ContentEncrypted = f.Columns()
			reencrypted++
		}

		if reencrypted > 0 {
			if err := tx.Diary.DeleteAll(ctx); err != nil {
				return err
			}
			if err := tx.Diary.Insert(ctx, records...); err != nil {
				return err
			}
		}
		if _, err := tx.Sessions.DeleteAll(ctx); err != nil {
			return err
		}
		return tx.Settings.Set(ctx, SettingCanary, canary)
	})
	if err != nil {
		newHandle.Lock()
		v.logger.Err(err).Str("func", "vault.ChangePassword").Msg("failed to re-encrypt vault")
		return nil, fmt.Errorf("change password: %w", err)
	}

	v.logger.Info().Str("func", "vault.ChangePassword").Int("fields", reencrypted).Msg("vault password changed")
	return newHandle, nil
}

// checkCanary derives keys for password with the stored salt and opens the
// canary with them. The caller owns the returned keys.
func (v *vault) checkCanary(ctx context.Context, password string) (crypto.Keys, error) {
	if password == "" {
		return crypto.Keys{}, ErrEmptyPassword
	}

	settings := v.storage.Repositories().Settings
	salt, err := settings.Get(ctx, SettingSalt)
	if err != nil {
		return crypto.Keys{}, fmt.Errorf("read salt: %w", err)
	}
	canary, err := settings.Get(ctx, SettingCanary)
	if err != nil {
		return crypto.Keys{}, fmt.Errorf("read canary: %w", err)
	}
	if salt == nil || canary == nil {
		return crypto.Keys{}, ErrPasswordNotSet
	}

	keys, err := v.keyChain.DeriveKeys(password, salt)
	if err != nil {
		return crypto.Keys{}, fmt.Errorf("derive keys: %w", err)
	}

	plain, err := v.keyChain.Open(canary, keys)
	if err != nil || string(plain) != canaryValue {
		keys.Wipe()
		return crypto.Keys{}, ErrWrongPassword
	}
	return keys, nil
}
