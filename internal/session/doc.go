// Package session keeps the vault unlocked between CLI invocations.
//
// A session pairs a signed JWT with a SessionRecoveryToken. Sessions started
// without "remember me" live in process memory only; remembered sessions are
// stored in the local database and survive restarts until they expire.
//
// The recovery token is a reversible obfuscation of the password, not
// encryption. Anyone who can read the database of a remembered session can
// recover the password. Use "remember me" only on a device you trust.
package session
