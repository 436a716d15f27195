package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	aStore := NewMemoryStore()
	_, ok := aStore.Get()
	assert.False(t, ok)

	assert.ErrorIs(t, aStore.Set(""), ErrEmptyToken)
	assert.NoError(t, aStore.Set("abc"))
	token, ok := aStore.Get()
	assert.True(t, ok)
	assert.EqualValues(t, "abc", token)

	assert.NoError(t, aStore.Remove())
	assert.NoError(t, aStore.Remove())
	_, ok = aStore.Get()
	assert.False(t, ok)

	seeded := NewMemoryStore("xyz")
	token, _ = seeded.Get()
	assert.EqualValues(t, "xyz", token)
}
