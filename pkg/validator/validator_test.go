package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `validate:"required,email"`
	Amount int64  `validate:"gte=0"`
}

func TestValidateStructCollectsFailures(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "not-an-email", Amount: -1})
	require.Len(t, errs, 2)

	assert.Equal(t, "sampleRequest.Email", errs[0].Field)
	assert.Equal(t, "email", errs[0].Tag)
	assert.Equal(t, "gte", errs[1].Tag)
	assert.Equal(t, "0", errs[1].Param)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(&sampleRequest{Email: "a@b.test"}))

	err := Check(&sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampleRequest.Email")
	assert.Contains(t, err.Error(), "required")
}
