package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type signUpPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	OTP      string `json:"otp" validate:"omitempty,len=6,numeric"`
}

func TestValidateStructAcceptsValidPayload(t *testing.T) {
	payload := signUpPayload{
		Email:    "alice@example.com",
		Password: "password123",
		OTP:      "123456",
	}
	require.NoError(t, ValidateStruct(payload))

	// The challenge code is optional until verification time.
	payload.OTP = ""
	require.NoError(t, ValidateStruct(payload))
}

func TestValidateStructReportsWireFieldNames(t *testing.T) {
	payload := signUpPayload{
		Email:    "not-an-address",
		Password: "tiny",
		OTP:      "12ab56",
	}

	err := ValidateStruct(payload)
	require.Error(t, err)

	var failures ValidationErrors
	require.ErrorAs(t, err, &failures)
	require.Equal(t, []string{"email", "password", "otp"}, failures.Fields())

	require.Contains(t, err.Error(), "email failed on email")
	require.Contains(t, err.Error(), "password failed on min=8")
}

func TestValidationErrorsEmptyMessage(t *testing.T) {
	require.Equal(t, "validation failed", ValidationErrors{}.Error())
}
