package credential

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// secretBytes gives 24 bytes of entropy, well past offline-guessing range.
const secretBytes = 24

// ErrGeneration indicates the random source failed.
var ErrGeneration = errors.New("credential: generation failed")

// Generator produces random credentials hashed at a fixed bcrypt cost.
type Generator struct {
	cost int
}

// New creates a Generator. Costs outside bcrypt's valid range fall back to
// cost 10, matching common adaptive-hashing defaults.
func New(cost int) *Generator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &Generator{cost: cost}
}

// Generate returns a fresh random secret and its bcrypt hash. The plaintext
// must not be persisted or logged; it exists only so the caller could, in
// principle, hand it to the user out of band.
func (g *Generator) Generate() (plaintext, hash string, err error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", errors.Join(ErrGeneration, err)
	}
	plaintext = base64.RawURLEncoding.EncodeToString(b)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), g.cost)
	if err != nil {
		return "", "", fmt.Errorf("credential: hash: %w", err)
	}

	return plaintext, string(hashed), nil
}
