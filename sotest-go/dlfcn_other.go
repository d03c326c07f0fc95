//go:build !linux || !cgo

package sotest_go

import (
	"errors"
	"runtime"
)

var errNoDlmopen = errors.New("dynamic loading needs dlmopen: build with cgo on linux (running on " + runtime.GOOS + ")")

type nativeLoader struct{}

func NativeLoader() Loader { return nativeLoader{} }

func ChildLoader() Loader { return nativeLoader{} }

func (nativeLoader) Open(path string) (Handle, error) {
	return nil, errNoDlmopen
}

func CallSymbol(sym Symbol) error {
	return errNoDlmopen
}
