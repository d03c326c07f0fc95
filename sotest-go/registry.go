package sotest_go

import (
	"errors"

	"github.com/ahrtr/gocontainer/set"
)

// LoadedLibrary is one successful `use`. It is never mutated; its handle is
// released by Registry.Close.
type LoadedLibrary struct {
	Path    string
	handle_ Handle
}

func (this *LoadedLibrary) Lookup(name string) (Symbol, bool) {
	return this.handle_.Lookup(name)
}

// Registry is the append-only list of loaded libraries in load order.
type Registry struct {
	loader_ Loader
	libs_   []*LoadedLibrary
	paths_  set.Interface
}

func NewRegistry(loader Loader) *Registry {
	ret := Registry{}
	ret.loader_ = loader
	ret.paths_ = set.New()
	return &ret
}

// Load opens path in a fresh namespace and appends it. Loading the same path
// twice is allowed and yields two independent entries.
func (this *Registry) Load(path string) (int, error) {
	handle, err := this.loader_.Open(path)
	if err != nil {
		return -1, &LoadError{Path: path, Msg: err.Error()}
	}
	lib := &LoadedLibrary{Path: path, handle_: handle}
	this.libs_ = append(this.libs_, lib)
	this.paths_.Add(lib.Path)
	return len(this.libs_) - 1, nil
}

// Contains reports whether path has been loaded before.
func (this *Registry) Contains(path string) bool {
	return this.paths_.Contains(path)
}

func (this *Registry) Len() int { return len(this.libs_) }

func (this *Registry) At(i int) *LoadedLibrary { return this.libs_[i] }

// Libraries returns the entries in load order.
func (this *Registry) Libraries() []*LoadedLibrary {
	return append([]*LoadedLibrary(nil), this.libs_...)
}

// Close releases every handle, newest first. The registry is empty
// afterwards.
func (this *Registry) Close() error {
	var errs []error
	for i := len(this.libs_) - 1; i >= 0; i-- {
		if err := this.libs_[i].handle_.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	this.libs_ = nil
	this.paths_.Clear()
	return errors.Join(errs...)
}
