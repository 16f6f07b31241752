//go:build unix

package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "LOCK")

	l, err := Lock(Default, path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	_, err = Lock(Default, path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, l.Unlock())
	require.NoError(t, l.Unlock())

	l2, err := Lock(Default, path)
	require.NoError(t, err)
	require.NoError(t, l2.Unlock())
}
