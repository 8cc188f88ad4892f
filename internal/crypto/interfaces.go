package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain owns every cryptographic primitive of the application. It knows
// nothing about storage, packages or users; each call is self-contained and
// safe for concurrent use.
//
// Envelope layout produced by Encrypt and Seal:
//
//	signature(32) ‖ salt(16) ‖ iv(12) ‖ ciphertext(n)
//
// The signature is HMAC-SHA256 over salt ‖ iv ‖ ciphertext and is always
// verified before any decryption attempt.
type KeyChain interface {
	// DeriveKeys turns password and salt into an AES-256 key and an
	// HMAC-SHA256 key. A nil salt makes DeriveKeys generate a fresh one.
	// The HMAC key is derived with the salt bit-flipped byte by byte, so
	// the two keys come from independent derivations.
	DeriveKeys(password string, salt []byte) (Keys, error)

	// Encrypt derives keys with a fresh salt and seals plaintext.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt re-derives keys from the salt embedded in envelope, verifies
	// the signature and only then decrypts. A bad signature yields
	// ErrTamperedOrWrongPassword; a good signature over undecryptable data
	// yields ErrCorruptPayload.
	Decrypt(envelope []byte, password string) ([]byte, error)

	// Seal is Encrypt with already derived keys.
	Seal(plaintext []byte, keys Keys) ([]byte, error)

	// Open is Decrypt with already derived keys. An envelope sealed under a
	// different salt fails as ErrTamperedOrWrongPassword.
	Open(envelope []byte, keys Keys) ([]byte, error)
}
