package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAccountNumber_ShortUnchanged(t *testing.T) {
	assert.Equal(t, "1234", MaskAccountNumber("1234"))
	assert.Equal(t, "12345678", MaskAccountNumber("12345678"))
	assert.Equal(t, "", MaskAccountNumber(""))
}

func TestMaskAccountNumber_LongMasked(t *testing.T) {
	assert.Equal(t, "1234****9012", MaskAccountNumber("123456789012"))
	assert.Equal(t, "1234****0123", MaskAccountNumber("1234567890123"))
	assert.Equal(t, "abcd****wxyz", MaskAccountNumber("abcdefghijklmnopqrstuvwxyz"))
}

func TestMaskAccountNumber_BoundaryNineChars(t *testing.T) {
	assert.Equal(t, "1234****6789", MaskAccountNumber("123456789"))
}
