// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package token_test

import (
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/go-accounts/internal/services/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims() token.Claims {
	return token.Claims{
		UserID:    "user-123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()
	svc := token.NewService("super-secret")

	tok, err := svc.Issue(testClaims())
	require.NoError(t, err)

	claims, err := svc.Verify(tok)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, token.DefaultTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssue_PayloadKeys(t *testing.T) {
	t.Parallel()
	svc := token.NewService("super-secret")

	tok, err := svc.Issue(testClaims())
	require.NoError(t, err)

	payload := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, payload)
	require.NoError(t, err)
	for _, key := range []string{"userId", "firstName", "lastName", "email", "exp", "iat"} {
		assert.Contains(t, payload, key)
	}
}

func TestIssue_MissingSecret(t *testing.T) {
	t.Parallel()
	svc := token.NewService("")

	tok, err := svc.Issue(testClaims())

	assert.ErrorIs(t, err, token.ErrMissingSecret)
	assert.Empty(t, tok)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	svc := token.NewService("secret", token.WithTTL(-1*time.Second))

	tok, err := svc.Issue(testClaims())
	require.NoError(t, err)

	_, err = svc.Verify(tok)

	assert.ErrorIs(t, err, token.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := token.NewService("secret", token.WithClock(func() time.Time { return now }))
	tok, err := issuer.Issue(testClaims())
	require.NoError(t, err)

	beforeExpiry := token.NewService("secret", token.WithClock(func() time.Time { return now.Add(23 * time.Hour) }))
	_, err = beforeExpiry.Verify(tok)
	require.NoError(t, err)

	afterExpiry := token.NewService("secret", token.WithClock(func() time.Time { return now.Add(25 * time.Hour) }))
	_, err = afterExpiry.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, err := token.NewService("right-secret").Issue(testClaims())
	require.NoError(t, err)

	_, err = token.NewService("wrong-secret").Verify(tok)

	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	svc := token.NewService("secret")

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, token.ErrInvalidToken, tok)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()
	svc := token.NewService("secret")
	tok, err := svc.Issue(testClaims())
	require.NoError(t, err)

	other, err := svc.Issue(token.Claims{UserID: "someone-else"})
	require.NoError(t, err)
	parts := strings.Split(tok, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(forged)

	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	claims := testClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	svc := token.NewService("secret")
	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	t.Parallel()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, testClaims()).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = token.NewService("secret").Verify(tok)

	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDecode_IgnoresSignatureAndExpiry(t *testing.T) {
	t.Parallel()
	tok, err := token.NewService("other", token.WithTTL(-time.Hour)).Issue(testClaims())
	require.NoError(t, err)

	claims, err := token.NewService("secret").Decode(tok)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := token.NewService("secret").Decode("garbage")

	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
