package umbral

import (
	"golang.org/x/sync/errgroup"
)

// ReencryptBatch runs Reencrypt over every kfrag concurrently, as a proxy
// operator fanning work out across many delegations would. Results are
// returned in the same order as kfrags. Every worker runs to completion;
// once all have finished, the first error from any worker is returned.
func ReencryptBatch(capsule *Capsule, kfrags []*VerifiedKeyFrag, metadata []byte) ([]*VerifiedCapsuleFrag, error) {
	out := make([]*VerifiedCapsuleFrag, len(kfrags))

	var eg errgroup.Group
	for i, kf := range kfrags {
		i, kf := i, kf
		eg.Go(func() error {
			vcf, err := Reencrypt(capsule, kf, metadata)
			if err != nil {
				return err
			}
			out[i] = vcf
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyKeyFragBatch verifies every kfrag in kfrags concurrently against
// the same identities, returning the first verification failure
// encountered. Results are returned in the same order as kfrags.
func VerifyKeyFragBatch(kfrags []*KeyFrag, verifyingPK, delegatingPK, receivingPK *PublicKey) ([]*VerifiedKeyFrag, error) {
	out := make([]*VerifiedKeyFrag, len(kfrags))

	var eg errgroup.Group
	for i, kf := range kfrags {
		i, kf := i, kf
		eg.Go(func() error {
			vkf, err := kf.Verify(verifyingPK, delegatingPK, receivingPK)
			if err != nil {
				return err
			}
			out[i] = vkf
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyCapsuleFragBatch verifies every cfrag in cfrags concurrently
// against the same capsule, identities, and metadata, returning the first
// verification failure encountered. Results are returned in the same order
// as cfrags.
func VerifyCapsuleFragBatch(
	capsule *Capsule,
	cfrags []*CapsuleFrag,
	verifyingPK, delegatingPK, receivingPK *PublicKey,
	metadata []byte,
) ([]*VerifiedCapsuleFrag, error) {
	out := make([]*VerifiedCapsuleFrag, len(cfrags))

	var eg errgroup.Group
	for i, cf := range cfrags {
		i, cf := i, cf
		eg.Go(func() error {
			vcf, err := cf.Verify(capsule, verifyingPK, delegatingPK, receivingPK, metadata)
			if err != nil {
				return err
			}
			out[i] = vcf
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
