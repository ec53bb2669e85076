package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	j, err := New("test-key")
	require.NoError(t, err)

	s := NewSession(time.Hour)
	token, err := j.SignToken(s)
	require.NoError(t, err)

	parsed, err := j.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, parsed.ID)
	assert.Equal(t, s.Expires, parsed.Expires)
}

func TestRejectsForeignKey(t *testing.T) {
	a, _ := New("key-a")
	b, _ := New("key-b")

	token, err := a.SignToken(NewSession(time.Hour))
	require.NoError(t, err)

	_, err = b.ParseSession(token)
	assert.Error(t, err)
}

func TestRejectsExpired(t *testing.T) {
	j, _ := New("test-key")
	token, err := j.SignToken(&Session{ID: "x", Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	_, err = j.ParseSession(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRejectsNonAdminClaims(t *testing.T) {
	j, _ := New("test-key")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(j.Key())
	require.NoError(t, err)

	_, err = j.ParseSession(token)
	assert.Error(t, err)
}

func TestEmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
