package index_test

import (
	"testing"

	"github.com/orixdb/orixdb/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := index.ParseID("abcdefghijkl")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijkl", id.String())

	// 12 bytes, 6 runes.
	_, err = index.ParseID("éééééé")
	assert.NoError(t, err)

	for _, bad := range []string{"", "short", "abcdefghijklm", "abcdefghij\xff\xff"} {
		_, err := index.ParseID(bad)
		assert.ErrorIs(t, err, index.ErrInvalidID, bad)
	}

	assert.Panics(t, func() { index.MustParseID("nope") })
}

func TestNewID(t *testing.T) {
	seen := make(map[index.ID]bool)
	for range 100 {
		id := index.NewID()
		assert.Regexp(t, `^[a-z0-9]{12}$`, id.String())
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIDText(t *testing.T) {
	id := index.MustParseID("collection01")
	b, err := id.MarshalText()
	require.NoError(t, err)

	var back index.ID
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, id, back)
	assert.Equal(t, -1, index.MustParseID("aaaaaaaaaaaa").Compare(id))
}
