// Package vault protects individual fields of on-device records.
//
// A [Vault] owns the installation salt and the password canary. Unlocking it
// with the right password yields an [Unlocked] handle holding the derived
// keys; every field encryption and decryption goes through that handle.
// Records keep each protected field as a [Field], which is either plaintext
// or ciphertext, so a store that mixes both reads correctly.
package vault
