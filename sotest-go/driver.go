package sotest_go

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Driver owns everything one script run needs and routes the commands the
// session completes: `use` to the registry, `call` to the dispatcher.
type Driver struct {
	config_     *Config
	status_     Status
	registry_   *Registry
	dispatcher_ *SymbolDispatcher
	session_    *Session
	metrics_    *Metrics
	watchdog_   *Watchdog
	journal_    *Journal
}

func NewDriver(config *Config, status Status, loader Loader, runner Runner) *Driver {
	ret := Driver{}
	ret.config_ = config
	ret.status_ = status
	ret.registry_ = NewRegistry(loader)
	ret.dispatcher_ = NewSymbolDispatcher(ret.registry_, runner)
	ret.session_ = NewSession(&ret, status, config.Interactive)
	ret.metrics_ = NewMetrics()
	ret.watchdog_, _ = NewWatchdog(0, status)
	return &ret
}

func (this *Driver) Registry() *Registry { return this.registry_ }

func (this *Driver) Session() *Session { return this.session_ }

func (this *Driver) Metrics() *Metrics { return this.metrics_ }

func (this *Driver) Watchdog() *Watchdog { return this.watchdog_ }

func (this *Driver) SetWatchdog(watchdog *Watchdog) {
	this.watchdog_.Shutdown()
	this.watchdog_ = watchdog
}

func (this *Driver) SetJournal(journal *Journal) { this.journal_ = journal }

// Run interprets src to the end. source names it in read errors.
func (this *Driver) Run(src io.Reader, source string) (uint64, error) {
	return ReadLoop(src, source, this.session_)
}

// RunCommand implements CommandRunner. Load and dispatch failures are
// reported and swallowed in interactive mode and returned, ending the run,
// in batch mode.
func (this *Driver) RunCommand(cmd Command) error {
	gCommands.Add(1)
	if this.config_.DebugTrace {
		this.status_.Info("line %d: %s %s", cmd.Line, cmd.Kind, cmd.Argument)
	}

	var err error
	switch cmd.Kind {
	case CMD_USE:
		err = this.use(cmd)
	case CMD_CALL:
		err = this.call(cmd)
	default:
		err = errors.New("Unknown command")
	}
	if err == nil {
		return nil
	}
	if this.config_.Interactive {
		this.status_.Error("%v", err)
		return nil
	}
	return err
}

func (this *Driver) use(cmd Command) error {
	defer this.metrics_.Record("load")()
	path := string(cmd.Argument)

	if this.config_.Verbose && this.registry_.Contains(path) {
		this.status_.Info("%s is already loaded, opening an independent copy", path)
	}
	index, err := this.registry_.Load(path)
	this.journalError(this.journal_.RecordLoad(cmd.Line, path, err))
	if err != nil {
		gLoadFailures.Add(1)
		return err
	}
	gLoads.Add(1)
	if this.config_.Verbose {
		this.status_.Info("loaded %s as library %d", path, index)
	}
	return nil
}

func (this *Driver) call(cmd Command) error {
	defer this.metrics_.Record("call")()
	name := string(cmd.Argument)

	start := time.Now()
	this.watchdog_.Begin(name)
	result, err := this.dispatcher_.Dispatch(name)
	this.watchdog_.End()
	this.journalError(this.journal_.RecordCall(cmd.Line, name, result, start))
	if err != nil {
		gCallsNotFound.Add(1)
		return err
	}

	gCalls.Add(1)
	this.metrics_.AddCall(result)
	if result.StartErr != nil {
		gCallFailures.Add(1)
		this.status_.Error("%v", result.StartErr)
		return nil
	}
	if !result.Succeeded {
		gCallFailures.Add(1)
	}
	if this.config_.Verbose {
		outcome := "exited cleanly"
		if !result.Succeeded {
			outcome = "failed"
		}
		this.status_.Info("call %s from %s %s", name, result.Library, outcome)
	}
	return nil
}

func (this *Driver) journalError(err error) {
	if err != nil {
		this.status_.Warning("journal: %v", err)
	}
}

// Close releases the loaded libraries and stops the watchdog.
func (this *Driver) Close() error {
	var errs []error
	if err := this.watchdog_.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("watchdog: %w", err))
	}
	if err := this.registry_.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
