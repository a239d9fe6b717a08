//go:build !unix

package config

import "os"

const (
	accessRead  uint32 = 0o4
	accessWrite uint32 = 0o2
	accessExec  uint32 = 0o1
)

// access approximates access(2) from the permission bits of any class.
func access(p string, mode uint32) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	perm := uint32(info.Mode().Perm())
	return perm&(mode<<6|mode<<3|mode) != 0
}
