package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modle-app/modle/internal/config"
)

func testJWTConfig() config.JWT {
	return config.JWT{
		Issuer:   "modle-identity",
		Audience: []string{"modle-api"},
		Secret:   "test-secret",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	proc := NewJWTProcessor(testJWTConfig(), time.Hour)

	token, err := proc.ToAccessToken("user-1")
	require.NoError(t, err)

	userID, err := proc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTWrongSecret(t *testing.T) {
	proc := NewJWTProcessor(testJWTConfig(), time.Hour)
	token, err := proc.ToAccessToken("user-1")
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "other-secret"
	_, err = NewJWTProcessor(other, time.Hour).ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTWrongIssuer(t *testing.T) {
	conf := testJWTConfig()
	conf.Issuer = "someone-else"
	token, err := NewJWTProcessor(conf, time.Hour).ToAccessToken("user-1")
	require.NoError(t, err)

	_, err = NewJWTProcessor(testJWTConfig(), time.Hour).ParseAccessToken(token)
	assert.ErrorContains(t, err, "issuer")
}

func TestJWTMissingAudience(t *testing.T) {
	conf := testJWTConfig()
	conf.Audience = []string{"other-api"}
	token, err := NewJWTProcessor(conf, time.Hour).ToAccessToken("user-1")
	require.NoError(t, err)

	_, err = NewJWTProcessor(testJWTConfig(), time.Hour).ParseAccessToken(token)
	assert.ErrorContains(t, err, "audience")
}

func TestJWTExpired(t *testing.T) {
	proc := NewJWTProcessor(testJWTConfig(), -time.Minute)
	token, err := proc.ToAccessToken("user-1")
	require.NoError(t, err)

	_, err = proc.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestContainsAll(t *testing.T) {
	assert.True(t, containsAll([]string{"a", "b"}, []string{"a"}))
	assert.True(t, containsAll([]string{"a", "b"}, []string{"b", "a"}))
	assert.True(t, containsAll(nil, nil))
	assert.False(t, containsAll([]string{"a"}, []string{"a", "b"}))
	assert.False(t, containsAll([]string{"a"}, []string{"c"}))
}
