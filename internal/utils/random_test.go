package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("María Sánchez")

	assert.True(t, strings.HasPrefix(username, "maria.sanchez"))
	assert.NotContains(t, username, " ")
	assert.Equal(t, strings.ToLower(username), username)
}

func TestGenerateRandomOTP(t *testing.T) {
	otp := GenerateRandomOTP()

	assert.Len(t, otp, 6)
	for _, c := range otp {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, password, 12)
}
