package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variantFixture struct {
	Src    string `validate:"required"`
	Weight int    `validate:"gte=1,lte=1000"`
	Style  string `validate:"oneof=normal italic"`
}

func TestValidate_Valid(t *testing.T) {
	v := variantFixture{Src: "fonts/Sans-Regular.woff2", Weight: 400, Style: "normal"}
	assert.NoError(t, Validate(v))
}

func TestValidate_MissingRequired(t *testing.T) {
	v := variantFixture{Weight: 400, Style: "normal"}

	err := Validate(v)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "field 'Src' is required")
}

func TestValidate_WeightOutOfRange(t *testing.T) {
	v := variantFixture{Src: "a.woff2", Weight: 1200, Style: "normal"}

	err := Validate(v)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "less than or equal to 1000")
}

func TestValidate_InvalidStyle(t *testing.T) {
	v := variantFixture{Src: "a.woff2", Weight: 400, Style: "oblique"}

	err := Validate(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: normal italic")
}
