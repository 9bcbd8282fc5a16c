// Package gpg provides OpenPGP detached signatures for release assets.
package gpg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// SignatureSuffix is appended to an asset name to name its signature
const SignatureSuffix = ".asc"

// Signer implements gateways.AssetSigner with an OpenPGP private key
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner loads an ASCII-armored private key, decrypting it with passphrase when needed.
// The first key of the armored block is used.
func NewSigner(armoredKey, passphrase string) (*Signer, error) {
	return newSigner(strings.NewReader(armoredKey), passphrase)
}

// NewSignerFromFile loads the armored private key stored at keyPath
func NewSignerFromFile(keyPath, passphrase string) (*Signer, error) {
	//nolint:gosec // G304: keyPath is user-provided signing key
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	return newSigner(f, passphrase)
}

func newSigner(r io.Reader, passphrase string) (*Signer, error) {
	entities, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in key data")
	}

	entity := entities[0]
	if entity.PrivateKey == nil {
		return nil, fmt.Errorf("key %X is not a private key", entity.PrimaryKey.Fingerprint)
	}

	if err := decrypt(entity, []byte(passphrase)); err != nil {
		return nil, err
	}

	return &Signer{entity: entity}, nil
}

// decrypt unlocks the primary key and any signing-capable subkeys
func decrypt(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted and no passphrase was given")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}

	for _, subkey := range entity.Subkeys {
		if subkey.PrivateKey == nil || !subkey.PrivateKey.Encrypted {
			continue
		}
		if err := subkey.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt subkey: %w", err)
		}
	}

	return nil
}

// Fingerprint returns the primary key fingerprint in upper-case hex
func (s *Signer) Fingerprint() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.Fingerprint)
}

// Sign returns an ASCII-armored detached signature of content
func (s *Signer) Sign(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, s.entity, bytes.NewReader(content), nil); err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return buf.Bytes(), nil
}

// SignatureName returns the asset name of the signature for name
func (s *Signer) SignatureName(name string) string {
	return name + SignatureSuffix
}
