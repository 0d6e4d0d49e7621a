package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
)

type sampleSettings struct {
	Mode        string `mapstructure:"mode" validate:"oneof=debug release"`
	Concurrency int    `mapstructure:"concurrency" validate:"gte=1"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleSettings{Mode: "debug", Concurrency: 2}))

	err := ValidateStruct(sampleSettings{Mode: "verbose", Concurrency: 0})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	appErr := errors.GetAppError(err)
	assert.Contains(t, appErr.Details, "sampleSettings.mode must be one of [debug release]")
	assert.Contains(t, appErr.Details, "sampleSettings.concurrency must be greater than or equal to 1")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}
