package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fengguoheng/shopauth/pkg/credential"
)

func TestGenerate(t *testing.T) {
	t.Run("hash matches plaintext", func(t *testing.T) {
		gen := credential.New(bcrypt.MinCost)

		plaintext, hash, err := gen.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, plaintext)
		assert.NotEqual(t, plaintext, hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)))
	})

	t.Run("each call yields a distinct secret", func(t *testing.T) {
		gen := credential.New(bcrypt.MinCost)

		p1, _, err := gen.Generate()
		require.NoError(t, err)
		p2, _, err := gen.Generate()
		require.NoError(t, err)
		assert.NotEqual(t, p1, p2)
	})

	t.Run("out-of-range cost falls back to default", func(t *testing.T) {
		gen := credential.New(99)

		plaintext, hash, err := gen.Generate()
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, 10, cost)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)))
	})
}
