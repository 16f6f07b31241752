//go:build !unix

package fs

func lockFd(uintptr) error   { return nil }
func unlockFd(uintptr) error { return nil }
