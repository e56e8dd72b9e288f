// Package credentials persists the Confluence username and password between runs.
//
// Credentials live in a small JSON file:
//
//	{"username": "alice", "password": "..."}
//
// With a PlainCipher the password is stored as typed. With a SecretboxCipher
// the password field holds a token: base64url(nonce || secretbox(password)),
// using NaCl secretbox with a random 24-byte nonce and a 32-byte key. The key
// is generated once by LoadOrCreateKey and kept in a separate file readable
// only by its owner.
//
// The key is never rotated and no backup is made. Losing or replacing the key
// file makes a stored password permanently unreadable; Load then fails with
// ErrDecrypt instead of pretending no password was stored.
package credentials
