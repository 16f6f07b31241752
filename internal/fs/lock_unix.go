//go:build unix

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

func lockFd(fd uintptr) error {
	err := unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB)
	if errors.Is(err, unix.EWOULDBLOCK) {
		return ErrLocked
	}
	return err
}

func unlockFd(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_UN)
}
