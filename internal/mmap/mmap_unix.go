// SPDX-License-Identifier: MIT

//go:build linux || darwin

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(f *os.File, size int64) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
}

func munmapFile(b []byte) error {
	return unix.Munmap(b)
}
