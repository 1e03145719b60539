package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Signer signs session tokens with a single Ed25519 key.
type Signer struct {
	kid  string
	priv ed25519.PrivateKey
}

// NewSigner wraps priv. The key id is derived from the public key so a
// restarted process keeps publishing the same kid.
func NewSigner(priv ed25519.PrivateKey) *Signer {
	pub := priv.Public().(ed25519.PublicKey)
	sum := sha256.Sum256(pub)
	return &Signer{
		kid:  "agentdesk-" + base64.RawURLEncoding.EncodeToString(sum[:9]),
		priv: priv,
	}
}

// GenerateSigner returns a signer over a fresh key. Tokens it signs do not
// survive a restart.
func GenerateSigner() (*Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate key: %w", err)
	}
	return NewSigner(priv), nil
}

func (s *Signer) KID() string { return s.kid }

func (s *Signer) PublicJWK() JWK {
	return newJWK(s.kid, s.priv.Public().(ed25519.PublicKey))
}

// LoadSigner reads a PKCS#8 PEM Ed25519 key from path, generating and
// writing one with mode 0600 when the file does not exist.
func LoadSigner(path string) (*Signer, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return createKeyFile(path)
	}
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: %s is not a PEM private key", path)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse %s: %w", path, err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: %s holds %T, want ed25519", path, key)
	}
	return NewSigner(priv), nil
}

func createKeyFile(path string) (*Signer, error) {
	s, err := GenerateSigner()
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(s.priv)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	out := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return nil, err
	}
	return s, nil
}
