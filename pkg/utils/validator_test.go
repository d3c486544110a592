package utils_test

import (
	"testing"

	"driver-auth/pkg/utils"

	"github.com/stretchr/testify/assert"
)

type passwordPayload struct {
	Password string `validate:"required,password"`
}

func TestPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{
			name:     "Meets policy",
			password: "Abcdef12",
			valid:    true,
		},
		{
			name:     "Too short",
			password: "Abc12",
			valid:    false,
		},
		{
			name:     "Missing uppercase",
			password: "abcdef12",
			valid:    false,
		},
		{
			name:     "Missing lowercase",
			password: "ABCDEF12",
			valid:    false,
		},
		{
			name:     "Missing digit",
			password: "Abcdefgh",
			valid:    false,
		},
		{
			name:     "Empty",
			password: "",
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := utils.ValidateStruct(passwordPayload{Password: tt.password})
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestValidateStructMessages(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}

	errs := utils.ValidateStruct(payload{Email: "not-an-email"})
	assert.Contains(t, errs, "Email")
	assert.Equal(t, "Invalid email format", errs["Email"])

	formatted := utils.FormatValidationErrors(errs)
	assert.Contains(t, formatted, "Email: Invalid email format")
}

func TestGenerateVerificationToken(t *testing.T) {
	first, err := utils.GenerateVerificationToken()
	assert.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := utils.GenerateVerificationToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
