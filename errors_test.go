package orixdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	corrupt := &index.CorruptError{Path: "p", Offset: 3, Msg: "trailing bytes"}
	err := translateError(corrupt)
	assert.ErrorIs(t, err, ErrIndexCorrupt)
	var ce *CorruptError
	assert.True(t, errors.As(err, &ce))
	assert.Same(t, corrupt, ce)

	// Already translated errors are not wrapped twice.
	assert.Same(t, err, translateError(err))

	inconsistent := fmt.Errorf("%w: sizes differ", index.ErrInconsistent)
	assert.ErrorIs(t, translateError(inconsistent), ErrIndexCorrupt)

	err = translateError(fs.ErrLocked)
	assert.ErrorIs(t, err, ErrStoreLocked)
	assert.ErrorIs(t, err, fs.ErrLocked)

	other := errors.New("other")
	assert.Same(t, other, translateError(other))
}

func TestErrorTaxonomyIsDistinct(t *testing.T) {
	all := []error{
		ErrDirectoryNotFound, ErrIndexCorrupt, ErrDeclined, ErrStoreLocked,
		ErrManifestMissing, ErrManifestUnreadable, ErrManifestCorrupt,
		ErrManifestWriteFailed, ErrInvalidManifest, ErrStoreNotServable,
		ErrInvalidPort, ErrIndexUnreadable, ErrDirectoryNotEmpty,
		ErrLayoutIncomplete,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b, "%v vs %v", a, b)
			}
		}
	}
	assert.ErrorIs(t, ErrStoreTooOld, ErrIncompatibleVersion)
	assert.ErrorIs(t, ErrEngineTooOld, ErrIncompatibleVersion)
}
