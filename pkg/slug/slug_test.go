package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"MotoKitchen":        "motokitchen",
		"Café Zürich":        "cafe-zurich",
		"De  Smulpaap / BBQ": "de-smulpaap-bbq",
		"--Trim Me--":        "trim-me",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("motokitchen"))
	assert.True(t, Valid("de-smulpaap-bbq"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("MotoKitchen"))
	assert.False(t, Valid("a b"))
	assert.False(t, Valid("-leading"))
}
