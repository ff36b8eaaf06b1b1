package dem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := KeyFromSharedSecret([]byte("some shared secret bytes"))
	plaintext := []byte("peace at dawn")

	ct, err := Encrypt(key, plaintext, nil)
	require.NoError(t, err)

	pt, err := Decrypt(key, ct, nil)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

func TestDecryptWithAAD(t *testing.T) {
	key := KeyFromSharedSecret([]byte("shared"))
	plaintext := []byte("hello")
	aad := []byte("context")

	ct, err := Encrypt(key, plaintext, aad)
	require.NoError(t, err)

	_, err = Decrypt(key, ct, nil)
	require.Error(t, err, "decrypting with mismatched AAD must fail")

	pt, err := Decrypt(key, ct, aad)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key1 := KeyFromSharedSecret([]byte("one"))
	key2 := KeyFromSharedSecret([]byte("two"))
	ct, err := Encrypt(key1, []byte("secret"), nil)
	require.NoError(t, err)

	_, err = Decrypt(key2, ct, nil)
	require.Error(t, err)
}

func TestKeyDerivationIsDeterministic(t *testing.T) {
	k1 := KeyFromSharedSecret([]byte("fixed input"))
	k2 := KeyFromSharedSecret([]byte("fixed input"))
	require.Equal(t, k1, k2)
}
