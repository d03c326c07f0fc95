package sotest_go

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/tevino/abool/v2"
)

// Watchdog tracks the call in flight. With a positive interval it also
// prints a notice at that interval while a call keeps running. It never
// interrupts a call: a hung symbol blocks the run until it exits.
type Watchdog struct {
	scheduler_ gocron.Scheduler
	running_   *abool.AtomicBool
	status_    Status

	mu_      sync.Mutex
	symbol_  string
	started_ time.Time
}

func NewWatchdog(interval time.Duration, status Status) (*Watchdog, error) {
	ret := &Watchdog{running_: abool.NewBool(false), status_: status}
	if interval <= 0 {
		return ret, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(ret.notice),
		gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		scheduler.Shutdown()
		return nil, err
	}
	scheduler.Start()
	ret.scheduler_ = scheduler
	return ret, nil
}

func (this *Watchdog) Begin(symbol string) {
	this.mu_.Lock()
	this.symbol_ = symbol
	this.started_ = time.Now()
	this.mu_.Unlock()
	this.running_.Set()
}

func (this *Watchdog) End() {
	this.running_.UnSet()
}

// InFlight reports whether a call child is currently being waited for.
func (this *Watchdog) InFlight() bool {
	return this.running_.IsSet()
}

func (this *Watchdog) notice() {
	if !this.running_.IsSet() {
		return
	}
	this.mu_.Lock()
	symbol, elapsed := this.symbol_, time.Since(this.started_)
	this.mu_.Unlock()
	this.status_.Info("call %s still running after %s", symbol, elapsed.Round(time.Second))
}

func (this *Watchdog) Shutdown() error {
	if this.scheduler_ == nil {
		return nil
	}
	return this.scheduler_.Shutdown()
}
