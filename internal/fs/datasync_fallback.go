//go:build !linux

package fs

import "os"

func fdatasync(f *os.File) error {
	return f.Sync()
}
