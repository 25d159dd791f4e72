package vault

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/TheMichaelB/pwvault/internal/crypto"
	"github.com/TheMichaelB/pwvault/internal/models"
)

// ContainerVersion identifies the current on-disk envelope schema.
// Version 1 containers carry no version or kdf_params fields.
const ContainerVersion = 2

// envelope is the on-disk container: everything needed to decrypt plus
// the authenticated ciphertext. The ciphertext authenticates the entire
// serialized vault; partial writes are not possible.
type envelope struct {
	Version   int            `json:"version,omitempty"`
	Salt      string         `json:"salt"`
	KDFParams *crypto.Params `json:"kdf_params,omitempty"`
	Data      envelopeData   `json:"data"`
}

type envelopeData struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Encode serializes and encrypts a vault under the given parameters.
// A fresh salt and nonce are generated on every call.
func Encode(v *models.Vault, passphrase string, params crypto.Params) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serialize vault: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(passphrase, salt, params)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext, err := crypto.Encrypt(payload, key)
	if err != nil {
		return nil, fmt.Errorf("encrypt vault: %w", err)
	}

	env := envelope{
		Version:   ContainerVersion,
		Salt:      base64.StdEncoding.EncodeToString(salt),
		KDFParams: &params,
		Data: envelopeData{
			Nonce:      base64.StdEncoding.EncodeToString(nonce),
			Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize container: %w", err)
	}
	return data, nil
}

// Decode parses a container and decrypts the vault with the parameters
// recorded in it. A structurally malformed container yields
// ErrIntegrity; an AEAD failure yields ErrAuthentication, and the two
// must stay distinguishable only at that granularity.
func Decode(data []byte, passphrase string) (*models.Vault, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "invalid container encoding")
	}

	if env.Salt == "" || env.Data.Nonce == "" || env.Data.Ciphertext == "" {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "missing container fields")
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "invalid salt encoding")
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Data.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "invalid nonce encoding")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Data.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "invalid ciphertext encoding")
	}
	if len(nonce) != crypto.NonceSize || len(ciphertext) < crypto.TagSize {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "truncated container")
	}

	params, err := containerParams(&env)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(passphrase, salt, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	}

	payload, err := crypto.Decrypt(nonce, ciphertext, key)
	if err != nil {
		return nil, models.ErrAuthentication
	}

	var v models.Vault
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrIntegrity, "invalid vault payload")
	}

	// The vault must always describe the parameters its current
	// on-disk form was derived with, legacy files included.
	if v.Metadata.KDFParams == nil {
		v.Metadata.KDFParams = &params
	}

	return &v, nil
}

// containerParams resolves the derivation parameters for a container.
// Files predating parameter storage fall back to the documented legacy
// set for their schema version.
func containerParams(env *envelope) (crypto.Params, error) {
	if env.KDFParams != nil {
		return *env.KDFParams, nil
	}

	version := env.Version
	if version == 0 {
		version = 1
	}

	params, ok := crypto.LegacyParams[version]
	if !ok {
		return crypto.Params{}, fmt.Errorf("%w: unsupported container version %d", models.ErrIntegrity, version)
	}
	return params, nil
}
