//go:build !linux

package sotest_go

import "syscall"

func childSysProcAttr() *syscall.SysProcAttr {
	return nil
}
