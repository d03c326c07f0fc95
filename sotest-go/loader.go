package sotest_go

import "unsafe"

// Symbol is an entry point resolved by name. Its only supported signature
// is void(void).
type Symbol struct {
	Name string
	addr unsafe.Pointer
}

// Handle is an open library in its own symbol namespace.
type Handle interface {
	Lookup(name string) (Symbol, bool)
	Close() error
}

// Loader opens libraries. Each Open yields an independent namespace, even
// for a path that is already open.
type Loader interface {
	Open(path string) (Handle, error)
}
