package sotest_go

import (
	"fmt"
	"io"
	"os"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
)

// Options are the command line settings that are not part of Config.
type Options struct {
	// Script file to run; empty selects interactive mode on stdin.
	ScriptPath string

	ConfigPath string

	// Tool to run rather than a script.
	Tool *Tool
}

func DebugEnable(name string, config *Config) bool {
	switch name {
	case "stats":
		config.DebugStats = true
		return true
	case "trace":
		config.DebugTrace = true
		return true
	}
	return false
}

func debugList(w io.Writer) {
	fmt.Fprintf(w, "debugging modes:\n"+
		"  stats    print metrics and the most recent calls at exit\n"+
		"  trace    print every command before it is dispatched\n")
}

// UsageMain prints usage information.
func UsageMain(w io.Writer) {
	fmt.Fprintf(w,
		"usage: %s [options] [script]\n"+
			"\n"+
			"if script is unspecified, commands are read interactively from stdin.\n"+
			"\n"+
			"options:\n"+
			"  -V       print %s version (\"%s\")\n"+
			"  -v       report every load and call outcome\n"+
			"\n"+
			"  -c FILE  read settings from a YAML config file [default=$SOTEST_CONFIG]\n"+
			"  -r FILE  record runs and calls in a journal database [default=$SOTEST_JOURNAL]\n"+
			"  -m ADDR  serve counters on http://ADDR/stats\n"+
			"  -p DUR   report calls still running every DUR (e.g. 30s)\n"+
			"\n"+
			"  -d MODE  enable debugging (use '-d list' to list modes)\n"+
			"  -t TOOL  run a subtool (use '-t list' to list subtools)\n",
		kProgName, kProgName, kSotestVersion)
}

// ReadFlags parses argv for command-line options.
// Returns an exit code, or -1 if the driver should continue.
func ReadFlags(args []string, options *Options, config *Config, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "c:d:hm:p:r:t:vV")
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", kProgName, err)
		UsageMain(stderr)
		return int(ExitFailure)
	}

	// The config file is the lowest-priority source after the defaults, so it
	// is merged before any other flag is applied.
	options.ConfigPath = os.Getenv("SOTEST_CONFIG")
	for _, opt := range opts {
		if opt.Option == 'c' {
			options.ConfigPath = opt.Value
		}
	}
	if options.ConfigPath != "" {
		if err := LoadConfigFile(options.ConfigPath, config); err != nil {
			fmt.Fprintf(stderr, "%s: error: %v\n", kProgName, err)
			return int(ExitFailure)
		}
	}
	ApplyEnvironment(config)

	for _, optV := range opts {
		optarg := optV.Value
		switch optV.Option {
		case 'c':
		case 'd':
			if optarg == "list" {
				debugList(stdout)
				return int(ExitSuccess)
			}
			if !DebugEnable(optarg, config) {
				fmt.Fprintf(stderr, "%s: error: unknown debug setting '%s'\n", kProgName, optarg)
				return int(ExitFailure)
			}
		case 'm':
			config.StatsAddr = optarg
		case 'p':
			interval, err := time.ParseDuration(optarg)
			if err != nil || interval < 0 {
				fmt.Fprintf(stderr, "%s: error: invalid -p parameter '%s'\n", kProgName, optarg)
				return int(ExitFailure)
			}
			config.ProgressInterval = interval
		case 'r':
			config.Journal = optarg
		case 't':
			options.Tool = ChooseTool(optarg, stdout, stderr)
			if options.Tool == nil {
				if optarg == "list" {
					return int(ExitSuccess)
				}
				return int(ExitFailure)
			}
		case 'v':
			config.Verbose = true
		case 'V':
			fmt.Fprintf(stdout, "%s\n", kSotestVersion)
			return int(ExitSuccess)
		default: // case 'h':
			UsageMain(stderr)
			return int(ExitFailure)
		}
	}

	rest := args[optind:]
	if options.Tool != nil {
		return -1
	}
	switch len(rest) {
	case 0:
		config.Interactive = true
	case 1:
		options.ScriptPath = rest[0]
	default:
		fmt.Fprintf(stderr, "%s: error: at most one script may be given\n", kProgName)
		UsageMain(stderr)
		return int(ExitFailure)
	}
	return -1
}
