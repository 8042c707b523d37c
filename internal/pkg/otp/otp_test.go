package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndCharset(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %q", c, code)
		}
	}
}

func TestGenerate_LeadingZerosOccur(t *testing.T) {
	// With 2000 samples the probability of never seeing a leading zero is
	// 0.9^2000, effectively nil.
	seen := false
	for i := 0; i < 2000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		if code[0] == '0' {
			seen = true
			break
		}
	}
	assert.True(t, seen, "expected at least one code with a leading zero")
}
