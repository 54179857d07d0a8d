package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNanoID(t *testing.T) {
	id := NanoID()

	assert.Len(t, id, nanoidLen)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(nanoidAlphabet, r), "unexpected character %q", r)
	}

	assert.NotEqual(t, id, NanoID())
}
