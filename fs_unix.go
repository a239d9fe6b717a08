//go:build unix

package config

import "golang.org/x/sys/unix"

const (
	accessRead  = unix.R_OK
	accessWrite = unix.W_OK
	accessExec  = unix.X_OK
)

func access(p string, mode uint32) bool {
	return unix.Access(p, mode) == nil
}
