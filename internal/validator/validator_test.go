package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"omitempty,is-user-role"`
	Status string `json:"status" validate:"omitempty,is-review-status"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Email: "user@example.com", Role: "talent", Status: "rejected"})
	assert.NoError(t, err)
}

func TestValidateFieldNamesFromJSONTags(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Email: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
}

func TestValidateCustomRules(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "user@example.com", Role: "admin"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "role")

	err = v.Validate(sampleRequest{Email: "user@example.com", Status: "pending"})
	require.Error(t, err)
	vErr = err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "status")
}
