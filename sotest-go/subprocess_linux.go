//go:build linux

package sotest_go

import "syscall"

// The child is killed when the driver dies.
func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: syscall.SIGKILL}
}
