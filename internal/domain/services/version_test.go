package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVersion_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"latest", "latest"},
		{"v1.2.3", "v1.2.3"},
		{"v0.0.0", "v0.0.0"},
		{"v10.20.30", "v10.20.30"},
		{"v01.2.3", "v01.2.3"},
		{"1.2.3", "v1.2.3"},
		{"0.7.1", "v0.7.1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.input == "latest", got.IsLatest())
		})
	}
}

func TestValidateVersion_Components(t *testing.T) {
	v, err := ValidateVersion("v3.14.159")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Major)
	assert.Equal(t, uint64(14), v.Minor)
	assert.Equal(t, uint64(159), v.Patch)
}

func TestValidateVersion_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"1.2",
		"abc",
		"v1.2.3.4",
		"1.2.3.4",
		"Latest",
		"LATEST",
		"v1.2",
		"v1.2.3-rc.1",
		"v1.2.3+build",
		"vv1.2.3",
		"v1.2.x",
		" v1.2.3",
		"v1.2.3 ",
		"99999999999999999999.0.0",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ValidateVersion(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidVersion))
			assert.Contains(t, err.Error(), "'latest'")
			assert.Contains(t, err.Error(), "'v.major.minor.patch'")
		})
	}
}
