//go:build linux && cgo

package sotest_go

/*
#define _GNU_SOURCE
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

// Open path, in a new link-map namespace when new_namespace is set so that
// symbols of different libraries never shadow each other. On failure *err
// receives a copy of the loader message, owned by the caller.
static void* so_open(const char* path, int new_namespace, char** err) {
	void* h = new_namespace ? dlmopen(LM_ID_NEWLM, path, RTLD_LAZY)
	                        : dlopen(path, RTLD_LAZY);
	if (!h) {
		const char* e = dlerror();
		*err = strdup(e ? e : "unknown dlerror");
	}
	return h;
}

static void* so_dlsym(void* h, const char* name) {
	dlerror();
	return dlsym(h, name);
}

static int so_dlclose(void* h) {
	return dlclose(h);
}

typedef void (*so_entry_fn)(void);

// Call fn and flush C stdio, since the child leaves through Go's exit path
// which does not run atexit handlers.
static void so_call(void* fn) {
	((so_entry_fn)fn)();
	fflush(NULL);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

type nativeLoader struct {
	newNamespace bool
}

// NativeLoader opens libraries with dlmopen(LM_ID_NEWLM, path, RTLD_LAZY).
func NativeLoader() Loader { return nativeLoader{newNamespace: true} }

// ChildLoader opens the one library of a call child in the default
// namespace, sharing the process libc. Output the symbol buffers in stdio is
// then flushed on the way out.
func ChildLoader() Loader { return nativeLoader{} }

type nativeHandle struct {
	handle unsafe.Pointer
	path   string
}

func (this nativeLoader) Open(path string) (Handle, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var cerr *C.char
	var new_namespace C.int
	if this.newNamespace {
		new_namespace = 1
	}
	h := C.so_open(cpath, new_namespace, &cerr)
	if h == nil {
		defer C.free(unsafe.Pointer(cerr))
		return nil, errors.New(C.GoString(cerr))
	}
	return &nativeHandle{handle: h, path: path}, nil
}

func (this *nativeHandle) Lookup(name string) (Symbol, bool) {
	if this.handle == nil {
		return Symbol{}, false
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	p := C.so_dlsym(this.handle, cname)
	if p == nil {
		return Symbol{}, false
	}
	return Symbol{Name: name, addr: p}, true
}

func (this *nativeHandle) Close() error {
	if this.handle == nil {
		return nil
	}
	h := this.handle
	this.handle = nil
	if C.so_dlclose(h) != 0 {
		return fmt.Errorf("dlclose(%q) failed", this.path)
	}
	return nil
}

// CallSymbol runs sym in the calling process. It is only ever used inside
// an isolated child.
func CallSymbol(sym Symbol) error {
	if sym.addr == nil {
		return fmt.Errorf("symbol %q has no address", sym.Name)
	}
	C.so_call(sym.addr)
	return nil
}
