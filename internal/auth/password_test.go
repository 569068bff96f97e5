package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)

	assert.True(t, VerifyPassword(hash, "Sup3r$ecret"))
	assert.False(t, VerifyPassword(hash, "sup3r$ecret"))
	assert.False(t, VerifyPassword("not-a-hash", "Sup3r$ecret"))
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		wantErr  error
	}{
		{"Sup3r$ecret", nil},
		{"Ab1!", ErrPasswordTooShort},
		{"lower1$only", ErrPasswordNoUpper},
		{"UPPER1$ONLY", ErrPasswordNoLower},
		{"NoNumbers$!", ErrPasswordNoNumber},
		{"NoSpecial123", ErrPasswordNoSpecialChar},
	}

	for _, tc := range cases {
		err := ValidatePasswordStrength(tc.password)
		if tc.wantErr == nil {
			assert.NoError(t, err, tc.password)
		} else {
			assert.ErrorIs(t, err, tc.wantErr, tc.password)
		}
	}
}
