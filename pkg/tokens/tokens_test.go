package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return &Issuer{
		Key:      []byte("test-jwt-key-that-is-long-enough-32"),
		Issuer:   "helpdesk",
		Audience: "helpdesk-admin",
		TTL:      15 * time.Minute,
	}
}

func TestIssuer_SignParse_RoundTripsSubject(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	token, exp, err := iss.Sign(Subject{ID: 7, Name: "Ana", Email: "ana@example.com", IsAdmin: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := iss.Parse(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_Parse_RejectsExpired(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	iss.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := iss.Sign(Subject{ID: 1})
	require.NoError(t, err)

	iss.Now = nil
	_, err = iss.Parse(token)
	require.Error(t, err)
}

func TestIssuer_Parse_RejectsForeignKeyAndAudience(t *testing.T) {
	t.Parallel()

	token, _, err := newTestIssuer().Sign(Subject{ID: 1})
	require.NoError(t, err)

	other := newTestIssuer()
	other.Key = []byte("another-jwt-key-that-is-long-enough")
	_, err = other.Parse(token)
	require.Error(t, err)

	aud := newTestIssuer()
	aud.Audience = "someone-else"
	_, err = aud.Parse(token)
	require.Error(t, err)
}

func TestAccessClaims_UserID_RejectsZero(t *testing.T) {
	t.Parallel()

	c := &AccessClaims{}
	c.Subject = "0"
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)

	c.Subject = "abc"
	_, err = c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_IsRandomAndDigestIsStable(t *testing.T) {
	t.Parallel()

	a, err := NewRefreshToken()
	require.NoError(t, err)
	b, err := NewRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, Digest(a), 64)
	assert.Equal(t, Digest(a), Digest(a))
	assert.NotEqual(t, Digest(a), Digest(b))
}
