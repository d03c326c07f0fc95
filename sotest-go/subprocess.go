package sotest_go

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Environment handed to the re-executed driver so it starts in child mode.
const (
	kChildLibraryEnv = "SOTEST_CHILD_LIBRARY"
	kChildSymbolEnv  = "SOTEST_CHILD_SYMBOL"
)

// Runner executes one symbol in an isolated execution unit and waits for it
// to terminate. It reports only whether the unit exited cleanly; err is set
// when the unit could not be started at all.
type Runner interface {
	Run(library, symbol string) (succeeded bool, err error)
}

// Subprocess is a child copy of the driver that opens one library in its own
// namespace and calls one symbol.
type Subprocess struct {
	cmd *exec.Cmd
}

func NewSubprocess(executable, library, symbol string, stdout, stderr io.Writer) *Subprocess {
	cmd := exec.Command(executable)
	cmd.Env = append(os.Environ(),
		kChildLibraryEnv+"="+library,
		kChildSymbolEnv+"="+symbol)
	// The child must not compete with the interpreter for script input.
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.SysProcAttr = childSysProcAttr()
	return &Subprocess{cmd: cmd}
}

func (this *Subprocess) Start() error {
	return this.cmd.Start()
}

// Finish waits for the child. Any non-zero exit or death by signal is a
// failure.
func (this *Subprocess) Finish() ExitStatus {
	if err := this.cmd.Wait(); err != nil {
		return ExitFailure
	}
	return ExitSuccess
}

// SubprocessRunner runs every call in a fresh child process.
type SubprocessRunner struct {
	executable_ string
	stdout_     io.Writer
	stderr_     io.Writer
}

func NewSubprocessRunner(stdout, stderr io.Writer) (*SubprocessRunner, error) {
	executable, err := os.Executable()
	if err != nil {
		return nil, &ResourceError{Op: "Error locating own executable", Err: err}
	}
	return &SubprocessRunner{executable_: executable, stdout_: stdout, stderr_: stderr}, nil
}

func (this *SubprocessRunner) Run(library, symbol string) (bool, error) {
	subproc := NewSubprocess(this.executable_, library, symbol, this.stdout_, this.stderr_)
	if err := subproc.Start(); err != nil {
		return false, fmt.Errorf("Error while forking: %w", err)
	}
	return subproc.Finish() == ExitSuccess, nil
}
