package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the number of random salt bytes generated per save.
	SaltSize = 16
)

// Params holds the Argon2id cost parameters recorded alongside every
// vault so decryption always reuses the exact values the file was
// written with.
type Params struct {
	TimeCost    uint32 `json:"time_cost" mapstructure:"time_cost"`
	MemoryKiB   uint32 `json:"memory_cost_kib" mapstructure:"memory_cost_kib"`
	Parallelism uint8  `json:"parallelism" mapstructure:"parallelism"`
	HashLen     uint32 `json:"hash_len" mapstructure:"hash_len"`
}

// DefaultParams returns the cost parameters used for newly saved vaults.
func DefaultParams() Params {
	return Params{
		TimeCost:    3,
		MemoryKiB:   64 * 1024,
		Parallelism: 1,
		HashLen:     KeySize,
	}
}

// LegacyParams maps a container schema version to the fixed parameter
// set used before parameters were stored in the envelope. Version 1
// files carry no kdf_params and must be derived with exactly these
// values.
var LegacyParams = map[int]Params{
	1: {TimeCost: 3, MemoryKiB: 64 * 1024, Parallelism: 1, HashLen: KeySize},
}

// Validate checks that the parameters describe a usable derivation.
func (p Params) Validate() error {
	if p.TimeCost == 0 {
		return fmt.Errorf("kdf time_cost must be positive")
	}
	if p.MemoryKiB < 8 {
		return fmt.Errorf("kdf memory_cost_kib too small: %d", p.MemoryKiB)
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("kdf parallelism must be positive")
	}
	if p.HashLen != KeySize {
		return fmt.Errorf("kdf hash_len must equal cipher key size %d, got %d", KeySize, p.HashLen)
	}
	return nil
}

// DeriveKey derives a symmetric key from a passphrase with Argon2id.
// Identical inputs always produce the identical key.
func DeriveKey(passphrase string, salt []byte, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("derive key: empty salt")
	}

	key := argon2.IDKey([]byte(passphrase), salt, p.TimeCost, p.MemoryKiB, p.Parallelism, p.HashLen)
	return key, nil
}

// NewSalt generates a fresh random salt. A salt is never reused, even
// when re-saving the same vault.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
