package sotest_go

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs the driver with the given argv and standard streams and returns
// the process exit status. A re-executed call child is recognized here
// before any flag parsing.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) ExitStatus {
	if IsChild() {
		return RunChild(ChildLoader(), stderr)
	}

	config := NewConfig()
	options := Options{}
	if exit_code := ReadFlags(args, &options, config, stdout, stderr); exit_code >= 0 {
		return ExitStatus(exit_code)
	}

	status := NewStatusPrinter(stdout, stderr, config)
	if options.Tool != nil {
		return options.Tool.Func(&options, config, status)
	}

	runner, err := NewSubprocessRunner(stdout, stderr)
	if err != nil {
		status.Error("%v", err)
		return ExitFailure
	}
	return RunScript(&options, config, status, NativeLoader(), runner, stdin)
}

func openScript(path string) (*os.File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &ResourceError{Op: "Error on calling stat for file", Source: "'" + path + "'", Err: err}
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("File '%s' is not a regular file.", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "Error opening file", Source: "'" + path + "'", Err: err}
	}
	return f, nil
}

// RunScript executes one script run: the file named by options, or stdin in
// interactive mode.
func RunScript(options *Options, config *Config, status *StatusPrinter, loader Loader, runner Runner, stdin io.Reader) ExitStatus {
	var src io.Reader
	var source string
	if config.Interactive {
		src = stdin
		source = "stdin"
	} else {
		f, err := openScript(options.ScriptPath)
		if err != nil {
			status.Error("%v", err)
			return ExitFailure
		}
		defer f.Close()
		src = f
		source = "file " + options.ScriptPath
	}

	driver := NewDriver(config, status, loader, runner)
	defer func() {
		if err := driver.Close(); err != nil {
			status.Warning("%v", err)
		}
	}()

	if config.Journal != "" {
		journal, err := OpenJournal(config.Journal)
		if err != nil {
			status.Error("%v", err)
			return ExitFailure
		}
		defer journal.Close()
		driver.SetJournal(journal)
		if err := journal.BeginRun(options.ScriptPath, config.Interactive); err != nil {
			status.Warning("journal: %v", err)
		}
	}

	if config.ProgressInterval > 0 {
		watchdog, err := NewWatchdog(config.ProgressInterval, status)
		if err != nil {
			status.Error("%v", err)
			return ExitFailure
		}
		driver.SetWatchdog(watchdog)
	}

	if config.StatsAddr != "" {
		server, err := StartStatsServer(config.StatsAddr)
		if err != nil {
			status.Error("%v", err)
			return ExitFailure
		}
		defer server.Shutdown()
		if config.Verbose {
			status.Info("serving counters on http://%s/stats", server.Addr())
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()
	go TerminateHandler(sigs, driver.Watchdog(), status)

	if config.Interactive {
		status.Plain("Running in interactive mode. Press ^C to exit.")
	}

	hash, err := driver.Run(src, source)
	exit := ExitSuccess
	if err != nil {
		status.Error("%v", err)
		exit = ExitFailure
	}
	if err := driver.journal_.FinishRun(hash, exit); err != nil {
		status.Warning("journal: %v", err)
	}
	if config.DebugStats {
		driver.Metrics().Report(status.Stdout())
	}
	return exit
}

// TerminateHandler exits on SIGTERM, and on an interrupt unless a call is in
// flight: the terminal delivers ^C to the call child as well, and losing the
// child is the expected outcome of that interrupt.
func TerminateHandler(sigs <-chan os.Signal, watchdog *Watchdog, status Status) {
	for s := range sigs {
		if s == os.Interrupt && watchdog.InFlight() {
			continue
		}
		status.Info("terminated by signal: %v", s)
		os.Exit(int(ExitInterrupted))
	}
}
