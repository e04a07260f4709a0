package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret-not-for-production"

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()
	h, err := NewHS256(testSecret)
	require.NoError(t, err)
	return h
}

func TestNewHS256_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256("")
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestHS256_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)
	now := time.Now()

	claims := NewAccessClaims("01JF8B3V9XK2M4N6P8Q0RS1TUV", "user@example.com", time.Hour, now)
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3, "compact JWT has three segments")

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JF8B3V9XK2M4N6P8Q0RS1TUV", got.Subject)
	require.Equal(t, "user@example.com", got.Email)
	require.WithinDuration(t, now, got.IssuedAt.Time, time.Second)
	require.WithinDuration(t, now.Add(time.Hour), got.ExpiresAt.Time, time.Second)
}

func TestHS256_Expired(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	// Issue a token that expired two hours ago.
	claims := NewAccessClaims("user-1", "user@example.com", time.Hour, time.Now().Add(-3*time.Hour))
	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256_Tampered(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	claims := NewAccessClaims("user-1", "user@example.com", time.Hour, time.Now())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signed payload.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = h.Verify(tampered)
	require.Error(t, err)
}

func TestHS256_WrongSecret(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	other, err := NewHS256("a-completely-different-secret")
	require.NoError(t, err)

	claims := NewAccessClaims("user-1", "user@example.com", time.Hour, time.Now())
	token, err := other.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256_Malformed(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify(tt.token)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestClaims_ValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("valid window", func(t *testing.T) {
		c := NewAccessClaims("u", "e@example.com", time.Hour, time.Now())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := NewAccessClaims("u", "e@example.com", time.Minute, time.Now().Add(-2*time.Minute))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := NewAccessClaims("u", "e@example.com", time.Hour, time.Now().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
