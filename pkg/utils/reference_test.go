package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference("TXN")
	assert.True(t, strings.HasPrefix(ref, "TXN-"))
	assert.Len(t, strings.Split(ref, "-"), 3)
}

func TestGenerateReferenceUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := GenerateReference("PYT")
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
