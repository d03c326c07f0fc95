package sotest_go

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test binary doubles as the call child, the same way the driver
// binary does.
func TestMain(m *testing.M) {
	if IsChild() {
		os.Exit(int(RunChild(ChildLoader(), os.Stderr)))
	}
	os.Exit(m.Run())
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sotest")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunScriptBatch(t *testing.T) {
	config := NewConfig()
	config.DebugStats = true
	status, stdout, stderr := newBufferedStatus(config)
	runner := &fakeRunner{fail: map[string]bool{"b1": true}}
	options := &Options{ScriptPath: writeScript(t, "use libA.so\nuse libB.so\ncall b1\ncall a1\n")}

	exit := RunScript(options, config, status, newTestLoader(), runner, nil)
	assert.Equal(t, ExitSuccess, exit)
	assert.Equal(t, []string{"libB.so:b1", "libA.so:a1"}, runner.calls)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "recent calls:")
	assert.NotContains(t, stdout.String(), "interactive mode")
}

func TestRunScriptBatchFailure(t *testing.T) {
	config := NewConfig()
	status, _, stderr := newBufferedStatus(config)
	options := &Options{ScriptPath: writeScript(t, "use libA.so\ncall nothing\ncall a1\n")}
	runner := &fakeRunner{}

	exit := RunScript(options, config, status, newTestLoader(), runner, nil)
	assert.Equal(t, ExitFailure, exit)
	assert.Empty(t, runner.calls)
	assert.Equal(t, "sotest: error: No function named nothing was found.\n", stderr.String())
}

func TestRunScriptBadScriptPath(t *testing.T) {
	config := NewConfig()
	status, _, stderr := newBufferedStatus(config)
	missing := filepath.Join(t.TempDir(), "missing.sotest")
	exit := RunScript(&Options{ScriptPath: missing}, config, status, newTestLoader(), &fakeRunner{}, nil)
	assert.Equal(t, ExitFailure, exit)
	assert.Contains(t, stderr.String(), "Error on calling stat for file '"+missing+"'")

	status, _, stderr = newBufferedStatus(config)
	dir := t.TempDir()
	exit = RunScript(&Options{ScriptPath: dir}, config, status, newTestLoader(), &fakeRunner{}, nil)
	assert.Equal(t, ExitFailure, exit)
	assert.Contains(t, stderr.String(), "File '"+dir+"' is not a regular file.")
}

func TestRunScriptInteractive(t *testing.T) {
	config := NewConfig()
	config.Interactive = true
	status, stdout, stderr := newBufferedStatus(config)
	runner := &fakeRunner{}
	stdin := strings.NewReader("use nope.so\nuse libA.so\ncall a1\nbogus\n")

	exit := RunScript(&Options{}, config, status, newTestLoader(), runner, stdin)
	assert.Equal(t, ExitSuccess, exit)
	assert.True(t, strings.HasPrefix(stdout.String(), "Running in interactive mode. Press ^C to exit.\n"))
	assert.Equal(t, []string{"libA.so:a1"}, runner.calls)
	assert.Contains(t, stderr.String(), "sotest: error: Error while opening nope.so: ")
	assert.Contains(t, stderr.String(), "sotest: warning: Unrecognized command 'bogus'\n")
}

func TestRunScriptJournal(t *testing.T) {
	config := NewConfig()
	config.Journal = filepath.Join(t.TempDir(), "journal.db")
	status, _, stderr := newBufferedStatus(config)
	options := &Options{ScriptPath: writeScript(t, "use libA.so\ncall a1\ncall common\n")}

	exit := RunScript(options, config, status, newTestLoader(), &fakeRunner{}, nil)
	require.Equal(t, ExitSuccess, exit, stderr.String())

	rows, err := ReadHistory(config.Journal, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "common", rows[0].Symbol)
	assert.Equal(t, "a1", rows[1].Symbol)
}

func TestRunScriptStatsServer(t *testing.T) {
	config := NewConfig()
	config.Verbose = true
	config.StatsAddr = "127.0.0.1:0"
	status, stdout, _ := newBufferedStatus(config)
	options := &Options{ScriptPath: writeScript(t, "use libA.so\n")}

	exit := RunScript(options, config, status, newTestLoader(), &fakeRunner{}, nil)
	assert.Equal(t, ExitSuccess, exit)
	assert.Contains(t, stdout.String(), "serving counters on http://127.0.0.1:")
}

func TestMainFlagsAndTools(t *testing.T) {
	clearEnvironment(t)
	var stdout, stderr bytes.Buffer
	assert.Equal(t, ExitSuccess, Main([]string{"sotest", "-V"}, nil, &stdout, &stderr))
	assert.Equal(t, kSotestVersion+"\n", stdout.String())

	stdout.Reset()
	stderr.Reset()
	assert.Equal(t, ExitFailure, Main([]string{"sotest", "-t", "history"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "no journal configured")
}

func TestRunChildFailures(t *testing.T) {
	var stderr bytes.Buffer
	t.Setenv(kChildLibraryEnv, "nope.so")
	t.Setenv(kChildSymbolEnv, "a1")
	assert.True(t, IsChild())
	assert.Equal(t, ExitFailure, RunChild(newTestLoader(), &stderr))
	assert.Contains(t, stderr.String(), "sotest: child: Error while opening nope.so: ")
	assert.False(t, IsChild(), "the child environment is not passed on")

	stderr.Reset()
	t.Setenv(kChildLibraryEnv, "libA.so")
	t.Setenv(kChildSymbolEnv, "b1")
	assert.Equal(t, ExitFailure, RunChild(newTestLoader(), &stderr))
	assert.Equal(t, "sotest: child: No function named b1 was found.\n", stderr.String())
}
