package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret")

	tok, err := s.MakeToken("phone-1", time.Hour)
	require.NoError(t, err)

	claims, err := s.ParseAuthorizationHeader("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "phone-1", claims.DeviceID)

	claims, err = s.ParseAuthorizationHeader("bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "phone-1", claims.DeviceID)
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("test-secret")
	other := NewSigner("other-secret")

	foreign, err := other.MakeToken("phone-1", time.Hour)
	require.NoError(t, err)
	_, err = s.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := s.MakeToken("phone-1", -time.Minute)
	require.NoError(t, err)
	_, err = s.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ParseAuthorizationHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = s.ParseAuthorizationHeader("Token abc")
	assert.ErrorIs(t, err, ErrMissingToken)
}
