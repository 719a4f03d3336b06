package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	t.Parallel()

	b := NewBcrypt(bcrypt.MinCost)

	hash, err := b.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, b.Compare(hash, "correct horse"))
	assert.ErrorIs(t, b.Compare(hash, "battery staple"), ErrPasswordMismatch)
	assert.Error(t, b.Compare("not-a-hash", "correct horse"))
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
