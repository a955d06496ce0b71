package auth

import (
	"testing"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(secret, "datepoint")
	userID := uuid.NewString()

	token, expiresAt, err := svc.IssueToken(userID, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(secret, "datepoint")
	userID := uuid.NewString()

	expired, _, err := svc.IssueToken(userID, -time.Minute)
	require.NoError(t, err)

	otherIssuer, _, err := NewTokenService(secret, "someone-else").IssueToken(userID, time.Hour)
	require.NoError(t, err)

	wrongSecret, _, err := NewTokenService("ffffffffffffffffffffffffffffffff", "datepoint").IssueToken(userID, time.Hour)
	require.NoError(t, err)

	notUUID, _, err := svc.IssueToken("42", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID,
		Issuer:  "datepoint",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other issuer": otherIssuer,
		"wrong secret": wrongSecret,
		"not a uuid":   notUUID,
		"no expiry":    noExpiry,
		"garbage":      "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}

	_, err = svc.VerifyToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
