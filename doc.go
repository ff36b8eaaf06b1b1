// Package umbral implements Umbral, a threshold proxy re-encryption
// scheme over secp256k1: Alice encrypts once to her own public key, then
// splits a re-encryption key into n key fragments (kfrags) such that any
// m of them, each wielded by an independent semi-trusted proxy, can
// transform her capsule into a fragment (cfrag) that Bob's secret key
// recombines into the original shared secret -- without any proxy or
// Bob's key ever touching Alice's private key.
//
// Architecture
//
//	Alice ──encrypt──▶ (Capsule, ciphertext)
//	  │
//	  └─generate_kfrags──▶ kfrag_1 … kfrag_n ──▶ proxy_1 … proxy_n
//	                                               │
//	                                          reencrypt(capsule, kfrag_i)
//	                                               │
//	                                               ▼
//	                                         cfrag_1 … cfrag_n
//	                                               │
//	                              Bob picks any m of them ──▶ decrypt_reencrypted
//	                                               │
//	                                               ▼
//	                                           plaintext
//
// internal/curve abstracts the elliptic-curve group (secp256k1 scalars
// and compressed points); internal/hashing provides the domain-separated
// digests every scalar-producing step needs; internal/dem is the
// symmetric AEAD layer keyed from each capsule's shared secret. Nothing
// outside internal/curve touches the curve backend directly.
//
// Quick example
//
//	aliceSK, _ := umbral.RandomSecretKey()
//	alicePK := aliceSK.PublicKey()
//	bobSK, _ := umbral.RandomSecretKey()
//	bobPK := bobSK.PublicKey()
//	signingSK, _ := umbral.RandomSecretKey()
//	signer := umbral.NewSigner(signingSK)
//
//	capsule, ciphertext, _ := umbral.Encrypt(alicePK, []byte("peace at dawn"))
//
//	kfrags, _ := umbral.GenerateKeyFrags(aliceSK, bobPK, signer, 2, 3, true, true)
//
//	var cfrags []*umbral.VerifiedCapsuleFrag
//	for _, kfrag := range kfrags[:2] {
//		cfrag, err := umbral.Reencrypt(capsule, kfrag, nil)
//		if err != nil {
//			log.Fatalf("reencrypt: %v", err)
//		}
//		cfrags = append(cfrags, cfrag)
//	}
//
//	plaintext, err := umbral.DecryptReencrypted(bobSK, alicePK, capsule, cfrags, ciphertext)
//	if err != nil {
//		log.Fatalf("decrypt: %v", err)
//	}
//	fmt.Println(string(plaintext))
//
// # Verified wrappers
//
// KeyFrag and CapsuleFrag are unverified the moment they cross a wire or
// deserialize from bytes. Reencrypt only accepts a *VerifiedKeyFrag, and
// DecryptReencrypted only accepts *VerifiedCapsuleFrag values, both
// produced by calling Verify (or, for a kfrag minted locally by
// GenerateKeyFrags, already verified on the way out). There is no public
// constructor that skips this step.
//
// # Concurrency
//
// Every exported type here is safe to share across goroutines for
// reads (serialization, verification); nothing mutates shared state.
// batch.go's ReencryptBatch, VerifyKeyFragBatch, and VerifyCapsuleFragBatch
// fan independent per-fragment work out across goroutines for proxy
// operators juggling many delegations at once.
package umbral
