package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)
	id := uuid.New()

	signed, expiresAt, err := m.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id.String(), subject)
}

func TestParseRejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)

	other, _, err := NewManager("other", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	expired, _, err := NewManager("secret", -time.Minute).Issue(uuid.New())
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"alg none":     noneAlg,
		"garbage":      "not.a.token",
		"bad subject":  badSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
