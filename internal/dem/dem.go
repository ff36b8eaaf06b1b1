// Package dem implements the data encapsulation mechanism: a symmetric
// AEAD layer keyed by HKDF over a capsule's shared-secret point, per
// spec.md §4.4. The AEAD itself (XChaCha20-Poly1305) and the RNG are
// treated as opaque collaborators, per spec.md §1's "out of scope" list;
// this package only wires them together.
package dem

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// keyDST is the fixed HKDF "info" string binding derived DEM keys to this
// scheme, distinct from the scalar-digest DSTs of the hashing layer (it
// never feeds a ScalarDigest, so it does not need that layer's
// length-prefix convention).
var keyDST = []byte("UMBRAL-DEM")

// KeyFromSharedSecret derives the 32-byte DEM key from the capsule's
// compressed shared-secret point via HKDF-SHA256.
func KeyFromSharedSecret(sharedSecretCompressed []byte) [32]byte {
	reader := hkdf.New(sha256.New, sharedSecretCompressed, nil, keyDST)
	var key [32]byte
	// hkdf.New's Reader never errors for an output this small relative to
	// SHA-256's expansion limit; key derivation is infallible once the
	// shared secret is itself valid.
	_, _ = io.ReadFull(reader, key[:])
	return key
}

// Encrypt seals plaintext under key with XChaCha20-Poly1305, optionally
// authenticating aad. The returned ciphertext is nonce || body || tag, the
// cipher's own opaque wire format (spec.md §6).
func Encrypt(key [32]byte, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errors.New("dem: failed to construct AEAD: " + err.Error())
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.New("dem: failed to sample nonce: " + err.Error())
	}

	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Decrypt opens a ciphertext produced by Encrypt under the same key and
// aad.
func Decrypt(key [32]byte, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errors.New("dem: failed to construct AEAD: " + err.Error())
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, errors.New("dem: ciphertext shorter than nonce")
	}
	nonce, body := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, body, aad)
	if err != nil {
		return nil, errors.New("dem: authentication failed")
	}
	return plaintext, nil
}
