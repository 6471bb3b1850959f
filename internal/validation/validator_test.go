package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	type registerRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"fullName" validate:"required,min=2,max=100"`
	}

	t.Run("valid struct passes", func(t *testing.T) {
		err := v.Validate(registerRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
			FullName: "Jane Doe",
		})
		assert.NoError(t, err)
	})

	t.Run("errors are readable and joined", func(t *testing.T) {
		err := v.Validate(registerRequest{
			Email:    "not-an-email",
			Password: "short",
		})
		require.Error(t, err)

		msg := err.Error()
		assert.Contains(t, msg, "Email must be a valid email")
		assert.Contains(t, msg, "Password must be at least 8")
		assert.Contains(t, msg, "FullName is required")
	})

	t.Run("oneof names the choices", func(t *testing.T) {
		type req struct {
			Status string `validate:"oneof=active archived"`
		}

		err := v.Validate(req{Status: "deleted"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Status must be one of: active archived")
	})
}
