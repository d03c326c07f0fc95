package sotest_go

import (
	"fmt"
	"io"
	"os"
)

// IsChild reports whether this process was started by a SubprocessRunner.
func IsChild() bool {
	return os.Getenv(kChildSymbolEnv) != ""
}

// RunChild is the body of an isolated call: open the library, resolve the
// symbol, call it once. Whatever the symbol does to this process is
// invisible to the driver except through the exit status.
func RunChild(loader Loader, stderr io.Writer) ExitStatus {
	library := os.Getenv(kChildLibraryEnv)
	symbol := os.Getenv(kChildSymbolEnv)
	// Processes started by the symbol are not children of the driver.
	os.Unsetenv(kChildLibraryEnv)
	os.Unsetenv(kChildSymbolEnv)

	handle, err := loader.Open(library)
	if err != nil {
		fmt.Fprintf(stderr, "%s: child: %v\n", kProgName, &LoadError{Path: library, Msg: err.Error()})
		return ExitFailure
	}
	sym, ok := handle.Lookup(symbol)
	if !ok {
		fmt.Fprintf(stderr, "%s: child: %v\n", kProgName, &DispatchError{Name: symbol})
		return ExitFailure
	}
	if err := CallSymbol(sym); err != nil {
		fmt.Fprintf(stderr, "%s: child: %v\n", kProgName, err)
		return ExitFailure
	}
	return ExitSuccess
}
