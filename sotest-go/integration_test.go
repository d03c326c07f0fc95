//go:build linux && cgo

package sotest_go

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixtures compiles testdata/dlib*.c into shared objects in a
// temporary directory.
func buildFixtures(t *testing.T) string {
	t.Helper()
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no C compiler available")
	}
	dir := t.TempDir()
	for _, name := range []string{"dlib1", "dlib2"} {
		out, err := exec.Command(cc, "-shared", "-fPIC", "-o",
			filepath.Join(dir, name+".so"), filepath.Join("testdata", name+".c")).CombinedOutput()
		require.NoError(t, err, string(out))
	}
	return dir
}

func runNative(t *testing.T, script string) (ExitStatus, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	config := NewConfig()
	config.Color = ColorNever
	status := NewStatusPrinter(&stdout, &stderr, config)
	runner, err := NewSubprocessRunner(&stdout, &stderr)
	require.NoError(t, err)
	options := &Options{ScriptPath: writeScript(t, script)}
	exit := RunScript(options, config, status, NativeLoader(), runner, nil)
	return exit, stdout.String(), stderr.String()
}

func TestNativeIsolation(t *testing.T) {
	dir := buildFixtures(t)
	script, err := os.ReadFile(filepath.Join("testdata", "basic.sotest"))
	require.NoError(t, err)
	exit, stdout, stderr := runNative(t, strings.ReplaceAll(string(script), "./", dir+"/"))
	require.Equal(t, ExitSuccess, exit, stderr)

	assert.Equal(t, []string{
		"dlib1_sym1 called",
		"dlib_common_sym(dlib1) called",
		"dlib1_crash called",
		"dlib2_sym2 called",
		// Every call starts from a freshly loaded library.
		"dlib1_state counter=1",
		"dlib1_state counter=1",
	}, strings.Split(strings.TrimSpace(stdout), "\n"))
}

func TestNativeChildExitIsNotFatal(t *testing.T) {
	dir := buildFixtures(t)
	exit, stdout, stderr := runNative(t,
		"use "+dir+"/dlib2.so\n"+
			"use "+dir+"/dlib1.so\n"+
			"call dlib_common_sym\n"+
			"call dlib2_sym1\n")
	require.Equal(t, ExitSuccess, exit, stderr)
	assert.Equal(t, "dlib_common_sym(dlib2) called\ndlib2_sym1 called\n", stdout)
}

func TestNativeLoadFailure(t *testing.T) {
	exit, _, stderr := runNative(t, "use /nonexistent/libnothing.so\n")
	assert.Equal(t, ExitFailure, exit)
	assert.Contains(t, stderr, "sotest: error: Error while opening /nonexistent/libnothing.so: ")
}

func TestNativeLookup(t *testing.T) {
	dir := buildFixtures(t)
	handle, err := NativeLoader().Open(filepath.Join(dir, "dlib1.so"))
	require.NoError(t, err)
	defer handle.Close()

	_, ok := handle.Lookup("dlib1_sym1")
	assert.True(t, ok)
	_, ok = handle.Lookup("dlib2_sym1")
	assert.False(t, ok)

	// A second open of the same file is an independent namespace.
	again, err := NativeLoader().Open(filepath.Join(dir, "dlib1.so"))
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}
