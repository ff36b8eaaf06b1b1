// Command umbral-demo exercises the full encrypt -> delegate -> reencrypt
// -> decrypt flow against in-process actors, entirely locally: no network
// transport, no persisted key material. It exists to give a reader a
// runnable walkthrough of the package's API surface.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	umbral "github.com/umbral-go/umbral-pre"
)

type config struct {
	threshold int
	shares    int
	plaintext string
	metadata  []string
	verbose   bool
}

func parseFlags(args []string) (config, error) {
	fs := pflag.NewFlagSet("umbral-demo", pflag.ContinueOnError)

	threshold := fs.IntP("threshold", "m", 2, "number of cfrags required to reconstruct the plaintext")
	shares := fs.IntP("shares", "n", 3, "number of kfrags generated for proxies")
	plaintext := fs.StringP("plaintext", "p", "peace at dawn", "plaintext to encrypt and round-trip")
	metadata := fs.StringSlice("metadata", nil, "per-proxy metadata, one entry per reencryption (repeatable)")
	verbose := fs.BoolP("verbose", "v", false, "enable debug-level logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if *threshold < 1 || *threshold > *shares {
		return config{}, fmt.Errorf("threshold (%d) must be between 1 and shares (%d)", *threshold, *shares)
	}

	return config{
		threshold: *threshold,
		shares:    *shares,
		plaintext: *plaintext,
		metadata:  *metadata,
		verbose:   *verbose,
	}, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("demo run failed")
	}
}

func run(cfg config, logger zerolog.Logger) error {
	aliceSK, err := umbral.RandomSecretKey()
	if err != nil {
		return fmt.Errorf("generate alice key: %w", err)
	}
	alicePK := aliceSK.PublicKey()

	bobSK, err := umbral.RandomSecretKey()
	if err != nil {
		return fmt.Errorf("generate bob key: %w", err)
	}
	bobPK := bobSK.PublicKey()

	signingSK, err := umbral.RandomSecretKey()
	if err != nil {
		return fmt.Errorf("generate signing key: %w", err)
	}
	signer := umbral.NewSigner(signingSK)

	logger.Debug().Msg("generated alice, bob, and signing keypairs")

	capsule, ciphertext, err := umbral.Encrypt(alicePK, []byte(cfg.plaintext))
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	logger.Info().Int("ciphertext_bytes", len(ciphertext)).Msg("encrypted plaintext under alice's public key")

	kfrags, err := umbral.GenerateKeyFrags(aliceSK, bobPK, signer, cfg.threshold, cfg.shares, true, true)
	if err != nil {
		return fmt.Errorf("generate kfrags: %w", err)
	}
	logger.Info().
		Int("threshold", cfg.threshold).
		Int("shares", cfg.shares).
		Msg("split delegation into kfrags")

	cfrags := make([]*umbral.VerifiedCapsuleFrag, 0, cfg.threshold)
	for i := 0; i < cfg.threshold; i++ {
		var metadata []byte
		if i < len(cfg.metadata) {
			metadata = []byte(cfg.metadata[i])
		}

		vcf, err := umbral.Reencrypt(capsule, kfrags[i], metadata)
		if err != nil {
			return fmt.Errorf("proxy %d reencrypt: %w", i, err)
		}
		cfrags = append(cfrags, vcf)
		logger.Debug().Int("proxy", i).Str("metadata", string(metadata)).Msg("proxy produced a cfrag")
	}

	recovered, err := umbral.DecryptReencrypted(bobSK, alicePK, capsule, cfrags, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypt reencrypted: %w", err)
	}

	logger.Info().
		Str("recovered", string(recovered)).
		Bool("matches_input", strings.TrimSpace(string(recovered)) == strings.TrimSpace(cfg.plaintext)).
		Msg("bob recovered the plaintext")

	return nil
}
