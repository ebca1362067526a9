// SPDX-License-Identifier: MIT

//go:build !linux && !darwin

package mmap

import (
	"io"
	"os"
)

// mmapFile falls back to a plain read on platforms without a wired mmap
// syscall binding. The typed view contract (§4.A) is preserved; only the
// near-sequential-I/O performance property is lost.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func munmapFile(b []byte) error {
	return nil
}
