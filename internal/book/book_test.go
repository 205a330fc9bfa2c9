package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_FiveFixedRecords(t *testing.T) {
	seed := Seed()
	require.Len(t, seed, 5)

	assert.Equal(t, "A Tale of Two Cities", seed[0].Title)
	assert.Equal(t, "Lewis Carroll", seed[4].Author)
	for _, b := range seed {
		assert.Zero(t, b.ID, "seed ids are assigned by the store")
	}
}

func TestSeed_ReturnsFreshSlice(t *testing.T) {
	a := Seed()
	a[0].Title = "changed"

	b := Seed()
	assert.Equal(t, "A Tale of Two Cities", b[0].Title)
}
