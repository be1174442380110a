package serverutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `validate:"required"`
	Kind string `validate:"omitempty,oneof=a b"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "x", Kind: "a"}))

	err := ValidateRequest(sampleRequest{Kind: "c"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["sampleRequest.Name"])
	assert.Equal(t, "must be one of [a b]", verr.Fields["sampleRequest.Kind"])
	assert.Contains(t, err.Error(), "validation failed")
}
