package sotest_go

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// recordingStatus keeps every message instead of printing it.
type recordingStatus struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (this *recordingStatus) Info(msg string, args ...interface{}) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.infos = append(this.infos, fmt.Sprintf(msg, args...))
}

func (this *recordingStatus) Warning(msg string, args ...interface{}) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.warnings = append(this.warnings, fmt.Sprintf(msg, args...))
}

func (this *recordingStatus) Error(msg string, args ...interface{}) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.errors = append(this.errors, fmt.Sprintf(msg, args...))
}

func (this *recordingStatus) Infos() []string {
	this.mu.Lock()
	defer this.mu.Unlock()
	return append([]string(nil), this.infos...)
}

// fakeLoader serves libraries from a table of path -> exported names.
type fakeLoader struct {
	libs   map[string][]string
	closed []string
}

func (this *fakeLoader) Open(path string) (Handle, error) {
	names, ok := this.libs[path]
	if !ok {
		return nil, errors.New(path + ": cannot open shared object file: No such file or directory")
	}
	return &fakeHandle{loader: this, path: path, names: names}, nil
}

type fakeHandle struct {
	loader *fakeLoader
	path   string
	names  []string
}

var fakeAddr byte

func (this *fakeHandle) Lookup(name string) (Symbol, bool) {
	for _, n := range this.names {
		if n == name {
			return Symbol{Name: name, addr: unsafe.Pointer(&fakeAddr)}, true
		}
	}
	return Symbol{}, false
}

func (this *fakeHandle) Close() error {
	this.loader.closed = append(this.loader.closed, this.path)
	return nil
}

// fakeRunner pretends to run calls. Symbols listed in fail exit uncleanly.
type fakeRunner struct {
	fail     map[string]bool
	startErr error
	calls    []string
}

func (this *fakeRunner) Run(library, symbol string) (bool, error) {
	this.calls = append(this.calls, library+":"+symbol)
	if this.startErr != nil {
		return false, this.startErr
	}
	return !this.fail[symbol], nil
}

// commandLog is a CommandRunner that writes every command as "line kind arg".
type commandLog struct {
	commands []string
	failOn   string
}

func (this *commandLog) RunCommand(cmd Command) error {
	this.commands = append(this.commands, fmt.Sprintf("%d %s %s", cmd.Line, cmd.Kind, cmd.Argument))
	if this.failOn != "" && string(cmd.Argument) == this.failOn {
		return &DispatchError{Name: this.failOn}
	}
	return nil
}

func newTestLoader() *fakeLoader {
	return &fakeLoader{libs: map[string][]string{
		"libA.so": {"a1", "common"},
		"libB.so": {"b1", "common"},
	}}
}
