package sotest_go

import (
	"expvar"
	"fmt"
	"io"
	"time"

	"github.com/edwingeng/deque"
)

// Counters exported on the stats endpoint - see https://pkg.go.dev/expvar.
var (
	gCommands      = expvar.NewInt("sotestCommands")
	gParseErrors   = expvar.NewInt("sotestParseErrors")
	gLoads         = expvar.NewInt("sotestLoads")
	gLoadFailures  = expvar.NewInt("sotestLoadFailures")
	gCalls         = expvar.NewInt("sotestCalls")
	gCallFailures  = expvar.NewInt("sotestCallFailures")
	gCallsNotFound = expvar.NewInt("sotestCallsNotFound")
)

// How many finished calls the stats report keeps.
const kRecentCalls = 8

type Metric struct {
	name string
	// Number of times we've hit the code path.
	count int
	// Total time we've spent on the code path.
	sum time.Duration
}

// Metrics collects timings per code path and the most recent call outcomes.
type Metrics struct {
	metrics_ []*Metric
	byName_  map[string]*Metric
	recent_  deque.Deque
}

func NewMetrics() *Metrics {
	return &Metrics{byName_: map[string]*Metric{}, recent_: deque.NewDeque()}
}

func (this *Metrics) NewMetric(name string) *Metric {
	if metric, ok := this.byName_[name]; ok {
		return metric
	}
	metric := &Metric{name: name}
	this.metrics_ = append(this.metrics_, metric)
	this.byName_[name] = metric
	return metric
}

// Record starts timing name; the returned func stops it.
//
//	defer metrics.Record("load")()
func (this *Metrics) Record(name string) func() {
	metric := this.NewMetric(name)
	start := time.Now()
	return func() {
		metric.count++
		metric.sum += time.Since(start)
	}
}

// AddCall remembers result, dropping the oldest beyond kRecentCalls.
func (this *Metrics) AddCall(result *CallResult) {
	this.recent_.PushBack(result)
	for this.recent_.Len() > kRecentCalls {
		this.recent_.PopFront()
	}
}

// RecentCalls returns the remembered calls, oldest first.
func (this *Metrics) RecentCalls() []*CallResult {
	n := this.recent_.Len()
	calls := make([]*CallResult, 0, n)
	for i := 0; i < n; i++ {
		v := this.recent_.PopFront()
		calls = append(calls, v.(*CallResult))
		this.recent_.PushBack(v)
	}
	return calls
}

// Report prints a summary table.
func (this *Metrics) Report(w io.Writer) {
	width := len("metric")
	for _, i := range this.metrics_ {
		width = max(len(i.name), width)
	}

	fmt.Fprintf(w, "%-*s\t%-6s\t%-9s\t%s\n", width,
		"metric", "count", "avg (us)", "total (ms)")
	for _, metric := range this.metrics_ {
		micros := metric.sum.Microseconds()
		total := float64(micros) / float64(1000)
		avg := 0.0
		if metric.count > 0 {
			avg = float64(micros) / float64(metric.count)
		}
		fmt.Fprintf(w, "%-*s\t%-6d\t%-8.1f\t%.1f\n", width, metric.name, metric.count, avg, total)
	}

	calls := this.RecentCalls()
	if len(calls) == 0 {
		return
	}
	fmt.Fprintf(w, "\nrecent calls:\n")
	for _, call := range calls {
		outcome := "ok"
		if !call.Succeeded {
			outcome = "FAILED"
		}
		fmt.Fprintf(w, "  %-6s %s (%s) %.1fms\n", outcome, call.Symbol, call.Library,
			float64(call.Elapsed.Microseconds())/1000)
	}
}
