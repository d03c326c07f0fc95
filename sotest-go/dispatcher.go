package sotest_go

import "time"

// CallResult describes one completed `call`. StartErr is set when the
// isolated child could not be spawned; Succeeded is then false.
type CallResult struct {
	Symbol    string
	Library   string
	Index     int
	Succeeded bool
	StartErr  error
	Elapsed   time.Duration
}

// SymbolDispatcher resolves symbols against a Registry in load order and
// runs them through a Runner.
type SymbolDispatcher struct {
	registry_ *Registry
	runner_   Runner
}

func NewSymbolDispatcher(registry *Registry, runner Runner) *SymbolDispatcher {
	return &SymbolDispatcher{registry_: registry, runner_: runner}
}

// Resolve returns the first library, in load order, that defines name.
func (this *SymbolDispatcher) Resolve(name string) (*LoadedLibrary, int, bool) {
	for i := 0; i < this.registry_.Len(); i++ {
		lib := this.registry_.At(i)
		if _, ok := lib.Lookup(name); ok {
			return lib, i, true
		}
	}
	return nil, -1, false
}

// Dispatch runs name from the first library defining it in an isolated
// child and waits for the child to exit. The only error is a
// *DispatchError for an unresolved name; how the child ended is reported in
// the result and never stops the run.
func (this *SymbolDispatcher) Dispatch(name string) (*CallResult, error) {
	lib, index, ok := this.Resolve(name)
	if !ok {
		return nil, &DispatchError{Name: name}
	}

	result := &CallResult{Symbol: name, Library: lib.Path, Index: index}
	start := time.Now()
	result.Succeeded, result.StartErr = this.runner_.Run(lib.Path, name)
	result.Elapsed = time.Since(start)
	return result, nil
}
