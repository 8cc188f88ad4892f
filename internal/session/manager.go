// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

const (
	// Issuer is the iss claim of every session token.
	Issuer = "myself"

	// SettingSignKey holds the random HMAC key session tokens are signed with.
	SettingSignKey = "session.sign_key"
	signKeySize    = 32
)

type manager struct {
	storage  store.Storage
	vault    vault.Vault
	profiles ProfileSource
	memory   store.SessionRepository
	cfg      config.Session
	now      func() time.Time
	logger   *logger.Logger
}

// NewManager returns a [Manager]. memory holds non-remembered sessions;
// remembered ones go to storage.
func NewManager(storage store.Storage, v vault.Vault, profiles ProfileSource, memory store.SessionRepository, cfg config.Session, log *logger.Logger) Manager {
	return &manager{
		storage:  storage,
		vault:    v,
		profiles: profiles,
		memory:   memory,
		cfg:      cfg,
		now:      time.Now,
		logger:   log,
	}
}

func (m *manager) Start(ctx context.Context, password string, remember bool) (models.Session, *vault.Unlocked, error) {
	u, err := m.vault.Unlock(ctx, password)
	if err != nil {
		return models.Session{}, nil, err
	}

	sess, err := m.issue(ctx, u, password, remember)
	if err != nil {
		u.Lock()
		return models.Session{}, nil, err
	}

	m.logger.Info().Str("func", "manager.Start").Bool("remember", remember).Time("expires_at", sess.ExpiresAt).Msg("session started")
	return sess, u, nil
}

func (m *manager) issue(ctx context.Context, u *vault.Unlocked, password string, remember bool) (models.Session, error) {
	profile, err := m.profiles.Get(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("get installation id: %w", err)
	}

	key, err := m.signKey(ctx)
	if err != nil {
		return models.Session{}, err
	}

	ttl := m.cfg.ShortTTL
	if remember {
		ttl = m.cfg.LongTTL
	}
	now := m.now()

	token, err := utils.GenerateJWTToken(Issuer, profile.InstallationID, now, ttl, key)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue session token: %w", err)
	}

	sess := models.Session{
		Token:     token.String(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		SaltRef:   base64.StdEncoding.EncodeToString(u.Salt()),
		Recovery:  models.NewSessionRecoveryToken(password),
		Remember:  remember,
	}
	if err = m.sessions(remember).Save(ctx, sess); err != nil {
		m.logger.Err(err).Str("func", "manager.issue").Msg("failed to store session")
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (m *manager) Resume(ctx context.Context) (models.Session, *vault.Unlocked, error) {
	sess, err := m.latest(ctx)
	if err != nil {
		return models.Session{}, nil, err
	}

	if sess.Expired(m.now()) {
		m.destroy(ctx, sess)
		return models.Session{}, nil, ErrSessionExpired
	}

	if err = m.validate(ctx, sess); err != nil {
		m.destroy(ctx, sess)
		return models.Session{}, nil, err
	}

	password, err := sess.Recovery.Reveal()
	if err != nil {
		m.destroy(ctx, sess)
		return models.Session{}, nil, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	u, err := m.vault.Unlock(ctx, password)
	if errors.Is(err, vault.ErrWrongPassword) {
		// the password was changed since the session started
		m.destroy(ctx, sess)
		return models.Session{}, nil, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}
	if err != nil {
		return models.Session{}, nil, err
	}

	if base64.StdEncoding.EncodeToString(u.Salt()) != sess.SaltRef {
		u.Lock()
		m.destroy(ctx, sess)
		return models.Session{}, nil, ErrSessionInvalid
	}

	return sess, u, nil
}

// validate checks the token signature, expiry and owner.
func (m *manager) validate(ctx context.Context, sess models.Session) error {
	key, err := m.signKey(ctx)
	if err != nil {
		return err
	}

	token, err := utils.ValidateAndParseJWTToken(sess.Token, key, Issuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrSessionExpired
	}
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "manager.validate").Msg("session token rejected")
		return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	profile, err := m.profiles.Get(ctx)
	if err != nil {
		return fmt.Errorf("get installation id: %w", err)
	}
	if token.InstallationID != profile.InstallationID {
		return ErrSessionInvalid
	}
	return nil
}

func (m *manager) Logout(ctx context.Context) error {
	sess, err := m.latest(ctx)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = m.sessions(sess.Remember).Delete(ctx, sess.Token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.logger.Info().Str("func", "manager.Logout").Msg("session destroyed")
	return nil
}

func (m *manager) Clear(ctx context.Context) error {
	if _, err := m.memory.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear memory sessions: %w", err)
	}
	if _, err := m.storage.Repositories().Sessions.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear stored sessions: %w", err)
	}
	return nil
}

func (m *manager) PurgeExpired(ctx context.Context) (int, error) {
	now := m.now()

	fromMemory, err := m.memory.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("purge memory sessions: %w", err)
	}
	fromStore, err := m.storage.Repositories().Sessions.DeleteExpired(ctx, now)
	if err != nil {
		return int(fromMemory), fmt.Errorf("purge stored sessions: %w", err)
	}
	return int(fromMemory + fromStore), nil
}

// latest returns the newest session, looking in memory first.
func (m *manager) latest(ctx context.Context) (models.Session, error) {
	for _, repo := range []store.SessionRepository{m.memory, m.storage.Repositories().Sessions} {
		sess, err := repo.Latest(ctx)
		if err != nil {
			return models.Session{}, fmt.Errorf("find session: %w", err)
		}
		if sess != nil {
			return *sess, nil
		}
	}
	return models.Session{}, ErrSessionNotFound
}

func (m *manager) destroy(ctx context.Context, sess models.Session) {
	if err := m.sessions(sess.Remember).Delete(ctx, sess.Token); err != nil {
		m.logger.Err(err).Str("func", "manager.destroy").Msg("failed to delete session")
	}
}

func (m *manager) sessions(remember bool) store.SessionRepository {
	if remember {
		return m.storage.Repositories().Sessions
	}
	return m.memory
}

// signKey returns the installation's token key, creating it on first use.
func (m *manager) signKey(ctx context.Context) ([]byte, error) {
	settings := m.storage.Repositories().Settings

	key, err := settings.Get(ctx, SettingSignKey)
	if err != nil {
		return nil, fmt.Errorf("read session key: %w", err)
	}
	if len(key) == signKeySize {
		return key, nil
	}

	key = make([]byte, signKeySize)
	if _, err = rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	if err = settings.Set(ctx, SettingSignKey, key); err != nil {
		m.logger.Err(err).Str("func", "manager.signKey").Msg("failed to store session key")
		return nil, fmt.Errorf("store session key: %w", err)
	}
	return key, nil
}
