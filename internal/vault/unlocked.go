package vault

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-myself-vault/internal/crypto"
)

// Unlocked holds the keys derived at unlock time. It is safe for concurrent
// use; Lock wipes the keys and every later call fails with ErrLocked.
type Unlocked struct {
	mu       sync.RWMutex
	keyChain crypto.KeyChain
	keys     crypto.Keys
	locked   bool
}

func newUnlocked(keyChain crypto.KeyChain, keys crypto.Keys) *Unlocked {
	return &Unlocked{keyChain: keyChain, keys: keys}
}

// EncryptField seals plaintext into an encrypted Field.
func (u *Unlocked) EncryptField(plaintext string) (Field, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.locked {
		return Field{}, ErrLocked
	}

	envelope, err := u.keyChain.Seal([]byte(plaintext), u.keys)
	if err != nil {
		return Field{}, fmt.Errorf("seal field: %w", err)
	}
	return EncryptedField(envelope), nil
}

// DecryptField returns the plaintext of f. Plaintext fields pass through.
func (u *Unlocked) DecryptField(f Field) (string, error) {
	if !f.encrypted {
		return f.value, nil
	}

	envelope, err := f.envelope()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.locked {
		return "", ErrLocked
	}

	plain, err := u.keyChain.Open(envelope, u.keys)
	if err != nil {
		return "", fmt.Errorf("open field: %w", err)
	}
	return string(plain), nil
}

// Lock wipes the key material. It is idempotent.
func (u *Unlocked) Lock() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.locked {
		return
	}
	u.keys.Wipe()
	u.locked = true
}

func (u *Unlocked) Locked() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.locked
}

// Salt returns a copy of the installation salt the keys were derived with.
func (u *Unlocked) Salt() []byte {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]byte(nil), u.keys.Salt...)
}
