package umbral

// ConstructionError wraps a failure to decode a fixed-size byte array into
// a valid core entity: bad length, invalid point, an out-of-range scalar,
// or a malformed boolean byte (spec.md §7). GenerateKeyFrags also returns
// it when threshold and shares are out of range.
type ConstructionError struct {
	// Entity names the type that failed to deserialize, e.g. "Capsule".
	Entity string
	// Reason is a short, non-sensitive description of what failed.
	Reason string
}

func (e *ConstructionError) Error() string {
	return "umbral: construction failure (" + e.Entity + "): " + e.Reason
}

// KeyFragVerificationError reports that a KeyFrag failed to verify: a bad
// signature, or a required delegating/receiving identity was not supplied.
type KeyFragVerificationError struct {
	Reason string
}

func (e *KeyFragVerificationError) Error() string {
	return "umbral: kfrag verification failed: " + e.Reason
}

// CapsuleFragVerificationError reports that a CapsuleFrag failed to
// verify: one of the three Chaum-Pedersen equations, or the embedded
// signature-for-Bob check. The specific equation is named for diagnostics
// only, never used for security branching by callers.
type CapsuleFragVerificationError struct {
	Reason string
}

func (e *CapsuleFragVerificationError) Error() string {
	return "umbral: cfrag verification failed: " + e.Reason
}

// OpenReencryptedErrorKind enumerates the ways capsule reconstruction from
// cfrags can fail (spec.md §4.11, §7).
type OpenReencryptedErrorKind int

const (
	// NoCapsuleFrags means the caller supplied zero cfrags.
	NoCapsuleFrags OpenReencryptedErrorKind = iota
	// MismatchedFragments means the supplied cfrags do not share a precursor.
	MismatchedFragments
	// RepeatingFragments means two supplied cfrags reduced to the same
	// Lagrange share index.
	RepeatingFragments
	// ValidationFailed means the Lagrange-reconstructed key failed to
	// authenticate the ciphertext (AEAD failure after an otherwise
	// successful open).
	ValidationFailed
)

func (k OpenReencryptedErrorKind) String() string {
	switch k {
	case NoCapsuleFrags:
		return "no capsule fragments supplied"
	case MismatchedFragments:
		return "capsule fragments disagree on precursor"
	case RepeatingFragments:
		return "duplicate capsule fragment share index"
	case ValidationFailed:
		return "decryption validation failed"
	default:
		return "unknown"
	}
}

// OpenReencryptedError is returned by DecryptReencrypted when the capsule
// cannot be opened from the supplied fragments.
type OpenReencryptedError struct {
	Kind OpenReencryptedErrorKind
}

func (e *OpenReencryptedError) Error() string {
	return "umbral: open reencrypted capsule: " + e.Kind.String()
}

// EncryptionError reports an AEAD-level failure during Encrypt.
type EncryptionError struct {
	Reason string
}

func (e *EncryptionError) Error() string {
	return "umbral: encryption failed: " + e.Reason
}

// DecryptionError reports an AEAD-level failure during DecryptOriginal. An
// AEAD failure in the final step of DecryptReencrypted is reported as an
// OpenReencryptedError with Kind ValidationFailed instead.
type DecryptionError struct {
	Reason string
}

func (e *DecryptionError) Error() string {
	return "umbral: decryption failed: " + e.Reason
}

// ReencryptionError reports that a proxy's capsule correctness check
// (spec.md §4.5 invariant) failed before re-encryption could proceed.
type ReencryptionError struct {
	Reason string
}

func (e *ReencryptionError) Error() string {
	return "umbral: reencryption failed: " + e.Reason
}

// SecretKeyFactoryError reports a SecretKeyFactory failure: an HKDF
// expansion error or an exhausted resample counter inside MakeKey, or a
// failed read from the supplied RNG in RandomSecretKeyFactory.
type SecretKeyFactoryError struct {
	Reason string
}

func (e *SecretKeyFactoryError) Error() string {
	return "umbral: secret key factory failed: " + e.Reason
}
