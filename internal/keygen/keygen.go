// Package keygen produces the program keypair whose public key becomes the
// generated project's program ID.
//
// Keys are ed25519, the public key is base58 encoded the way Solana prints
// addresses, and keypair files use the Solana CLI format: a JSON array of the
// 64 secret key bytes (seed followed by public key).
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mr-tron/base58"
)

// Generator creates program keypairs.
type Generator interface {
	Generate() (*Keypair, error)
}

// Keypair is an ed25519 program keypair.
type Keypair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// ProgramID returns the base58 encoding of the public key.
func (k *Keypair) ProgramID() string {
	return base58.Encode(k.PublicKey)
}

// MarshalJSON encodes the secret key as a JSON array of byte values.
func (k *Keypair) MarshalJSON() ([]byte, error) {
	values := make([]int, len(k.PrivateKey))
	for i, b := range k.PrivateKey {
		values[i] = int(b)
	}
	return json.Marshal(values)
}

// UnmarshalJSON decodes a Solana CLI keypair array.
func (k *Keypair) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("decoding keypair: %w", err)
	}
	if len(values) != ed25519.PrivateKeySize {
		return fmt.Errorf("keypair must have %d bytes, got %d", ed25519.PrivateKeySize, len(values))
	}

	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("keypair byte %d out of range: %d", i, v)
		}
		priv[i] = byte(v)
	}

	k.PrivateKey = priv
	k.PublicKey = priv.Public().(ed25519.PublicKey)
	return nil
}

// WriteFile saves the keypair to path with owner-only permissions,
// creating parent directories as needed.
func (k *Keypair) WriteFile(path string) error {
	data, err := json.Marshal(k)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating keypair directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing keypair %s: %w", path, err)
	}
	return nil
}

// Ed25519Generator generates keypairs from an entropy source.
type Ed25519Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading entropy from r.
// A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Ed25519Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Ed25519Generator{rand: r}
}

// Generate creates a new keypair.
func (g *Ed25519Generator) Generate() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(g.rand)
	if err != nil {
		return nil, fmt.Errorf("generating program keypair: %w", err)
	}
	return &Keypair{PublicKey: pub, PrivateKey: priv}, nil
}

// KeypairPath returns where Anchor expects the deploy keypair of a program.
func KeypairPath(projectDir, programName string) string {
	return filepath.Join(projectDir, "target", "deploy", programName+"-keypair.json")
}
