// Package layout creates and validates the directory skeleton of a store:
//
//	manifest.json
//	singletons/rixindex
//	collections/rixindex
//	collections/<collection id>/rixindex   (one per collection, optional)
//	checksums/
//	logs/
//	tmp/
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/manifest"
)

const (
	ManifestFile   = manifest.FileName
	SingletonsDir  = "singletons"
	CollectionsDir = "collections"
	ChecksumsDir   = "checksums"
	LogsDir        = "logs"
	TmpDir         = "tmp"
	IndexFile      = "rixindex"

	// LockFile lives in TmpDir and is held while a store is open.
	LockFile = "LOCK"

	dirPerm = 0o755
)

var (
	ErrNotADirectory     = errors.New("store path is not a directory")
	ErrDirectoryNotEmpty = errors.New("store directory is not empty")
	ErrParentMissing     = errors.New("parent directory does not exist")
	ErrLayoutIncomplete  = errors.New("store layout incomplete")
)

// Layout holds the absolute paths of every store artifact.
type Layout struct {
	Root        string
	Manifest    string
	Singletons  string // singletons/rixindex
	Collections string // collections/rixindex
	Checksums   string
	Logs        string
	Tmp         string
	Lock        string
}

// Paths returns the artifact paths under root.
func Paths(root string) Layout {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return Layout{
		Root:        root,
		Manifest:    filepath.Join(root, ManifestFile),
		Singletons:  filepath.Join(root, SingletonsDir, IndexFile),
		Collections: filepath.Join(root, CollectionsDir, IndexFile),
		Checksums:   filepath.Join(root, ChecksumsDir),
		Logs:        filepath.Join(root, LogsDir),
		Tmp:         filepath.Join(root, TmpDir),
		Lock:        filepath.Join(root, TmpDir, LockFile),
	}
}

// CollectionIndex returns the path of the item index of collection cid. It
// uses the singletons layout.
func (l Layout) CollectionIndex(cid index.ID) string {
	return filepath.Join(filepath.Dir(l.Collections), cid.String(), IndexFile)
}

// CreateCollection creates the directory and an empty item index for
// collection cid. A collection without an item index has no items.
func CreateCollection(fsys fs.FileSystem, root string, cid index.ID) error {
	if fsys == nil {
		fsys = fs.Default
	}
	path := Paths(root).CollectionIndex(cid)
	dir := filepath.Dir(path)
	if err := fsys.Mkdir(dir, dirPerm); err != nil {
		return fmt.Errorf("layout: create %s: %w", dir, err)
	}
	if err := index.WriteSingletons(fsys, path, nil); err != nil {
		_ = fsys.RemoveAll(dir)
		return err
	}
	return nil
}

// Initialize creates a new store at root with manifest m.
//
// root must not exist or be an empty directory, and its parent must exist.
// If any step fails everything created by this call is removed again; an
// existing empty root is left in place.
func Initialize(fsys fs.FileSystem, root string, m *manifest.Manifest) (err error) {
	if fsys == nil {
		fsys = fs.Default
	}
	if err := manifest.Validate(m); err != nil {
		return err
	}
	l := Paths(root)

	var created []string
	defer func() {
		if err == nil {
			return
		}
		for i := len(created) - 1; i >= 0; i-- {
			_ = fsys.RemoveAll(created[i])
		}
	}()

	info, statErr := fsys.Stat(l.Root)
	switch {
	case statErr == nil && !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotADirectory, l.Root)
	case statErr == nil:
		empty, err := fs.IsEmptyDir(fsys, l.Root)
		if err != nil {
			return fmt.Errorf("layout: inspect %s: %w", l.Root, err)
		}
		if !empty {
			return fmt.Errorf("%w: %s", ErrDirectoryNotEmpty, l.Root)
		}
	case errors.Is(statErr, os.ErrNotExist):
		parent := filepath.Dir(l.Root)
		if pinfo, err := fsys.Stat(parent); err != nil || !pinfo.IsDir() {
			return fmt.Errorf("%w: %s", ErrParentMissing, parent)
		}
		if err := fsys.Mkdir(l.Root, dirPerm); err != nil {
			return fmt.Errorf("layout: create %s: %w", l.Root, err)
		}
		created = append(created, l.Root)
	default:
		return fmt.Errorf("layout: stat %s: %w", l.Root, statErr)
	}

	created = append(created, l.Manifest)
	if err := manifest.Save(fsys, l.Manifest, m); err != nil {
		return err
	}

	for _, dir := range []string{
		filepath.Dir(l.Singletons),
		filepath.Dir(l.Collections),
		l.Checksums,
		l.Logs,
		l.Tmp,
	} {
		if err := fsys.Mkdir(dir, dirPerm); err != nil {
			return fmt.Errorf("layout: create %s: %w", dir, err)
		}
		created = append(created, dir)
	}

	if err := index.WriteSingletons(fsys, l.Singletons, nil); err != nil {
		return err
	}
	if err := index.WriteCollections(fsys, l.Collections, nil); err != nil {
		return err
	}

	if err := fs.SyncDir(fsys, l.Root); err != nil {
		return fmt.Errorf("layout: sync %s: %w", l.Root, err)
	}
	return nil
}

// Validate checks that every artifact exists with the expected kind.
func Validate(fsys fs.FileSystem, root string) error {
	if fsys == nil {
		fsys = fs.Default
	}
	l := Paths(root)

	checks := []struct {
		path string
		dir  bool
	}{
		{l.Manifest, false},
		{filepath.Dir(l.Singletons), true},
		{l.Singletons, false},
		{filepath.Dir(l.Collections), true},
		{l.Collections, false},
		{l.Checksums, true},
		{l.Logs, true},
		{l.Tmp, true},
	}
	for _, c := range checks {
		info, err := fsys.Stat(c.path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLayoutIncomplete, c.path, err)
		}
		if info.IsDir() != c.dir {
			want := "a regular file"
			if c.dir {
				want = "a directory"
			}
			return fmt.Errorf("%w: %s is not %s", ErrLayoutIncomplete, c.path, want)
		}
	}
	return nil
}
