package cryptox

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := NewKey()
	plain := []byte(`{"accessToken":"A1","refreshToken":"R1"}`)

	sealed, err := Seal(plain, key)
	require.NoError(t, err)
	require.False(t, bytes.Contains(sealed, []byte("A1")), "plaintext must not leak")

	got, err := Open(sealed, key)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestSeal_NonceIsRandom(t *testing.T) {
	key := NewKey()
	a, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestOpen_WrongKey(t *testing.T) {
	sealed, err := Seal([]byte("secret"), NewKey())
	require.NoError(t, err)

	_, err = Open(sealed, NewKey())
	require.ErrorIs(t, err, common.ErrCorruptValue)
}

func TestOpen_Truncated(t *testing.T) {
	_, err := Open([]byte{1, 2, 3}, NewKey())
	require.ErrorIs(t, err, common.ErrCorruptValue)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, err := Seal([]byte("x"), []byte("short"))
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := DeriveKey([]byte("device-secret"), []byte("salt-1"))
	k2 := DeriveKey([]byte("device-secret"), []byte("salt-1"))
	k3 := DeriveKey([]byte("device-secret"), []byte("salt-2"))

	require.Len(t, k1, KeySize)
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
}
