package sotest_go

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilJournal(t *testing.T) {
	var journal *Journal
	assert.NoError(t, journal.BeginRun("s.txt", false))
	assert.NoError(t, journal.RecordLoad(1, "libA.so", nil))
	assert.NoError(t, journal.RecordCall(2, "a1", nil, time.Now()))
	assert.NoError(t, journal.FinishRun(0, ExitSuccess))
	assert.Empty(t, journal.RunID())
	assert.NoError(t, journal.Close())
}

func fillJournal(t *testing.T, path string) string {
	t.Helper()
	journal, err := OpenJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	require.NoError(t, journal.BeginRun("script.txt", false))
	require.NotEmpty(t, journal.RunID())
	require.NoError(t, journal.RecordLoad(1, "libA.so", nil))
	start := time.Now()
	require.NoError(t, journal.RecordCall(2, "a1", &CallResult{Symbol: "a1", Library: "libA.so", Succeeded: true}, start))
	require.NoError(t, journal.RecordCall(3, "b1", &CallResult{Symbol: "b1", Library: "libA.so"}, start))
	require.NoError(t, journal.RecordCall(4, "zz", nil, start))
	require.NoError(t, journal.FinishRun(0x1234, ExitFailure))
	return journal.RunID()
}

func TestJournalHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	runID := fillJournal(t, path)

	rows, err := ReadHistory(path, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Newest first.
	assert.Equal(t, "zz", rows[0].Symbol)
	assert.False(t, rows[0].Found)
	assert.Equal(t, "b1", rows[1].Symbol)
	assert.True(t, rows[1].Found)
	assert.False(t, rows[1].Succeeded)
	assert.Equal(t, "a1", rows[2].Symbol)
	assert.True(t, rows[2].Succeeded)
	assert.Equal(t, "libA.so", rows[2].Library)
	assert.Equal(t, 2, rows[2].Line)
	for _, row := range rows {
		assert.Equal(t, runID, row.RunID)
	}

	rows, err = ReadHistory(path, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestJournalClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	fillJournal(t, path)

	journal, err := OpenJournal(path)
	require.NoError(t, err)
	count, err := journal.Clean()
	require.NoError(t, err)
	// Three calls, one load and one run.
	assert.Equal(t, int64(5), count)
	require.NoError(t, journal.Close())

	rows, err := ReadHistory(path, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadHistoryMissingJournal(t *testing.T) {
	_, err := ReadHistory(filepath.Join(t.TempDir(), "missing.db"), 10)
	var rerr *ResourceError
	assert.ErrorAs(t, err, &rerr)
}

func newBufferedStatus(config *Config) (*StatusPrinter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	config.Color = ColorNever
	return NewStatusPrinter(&stdout, &stderr, config), &stdout, &stderr
}

func TestToolHistoryAndClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	fillJournal(t, path)
	config := NewConfig()
	config.Journal = path

	status, stdout, _ := newBufferedStatus(config)
	assert.Equal(t, ExitSuccess, ToolHistory(&Options{}, config, status))
	assert.Contains(t, stdout.String(), "missing  zz (line 4)")
	assert.Contains(t, stdout.String(), "FAILED   b1 in libA.so (line 3)")
	assert.Contains(t, stdout.String(), "ok       a1 in libA.so (line 2)")

	status, stdout, _ = newBufferedStatus(config)
	assert.Equal(t, ExitSuccess, ToolClean(&Options{}, config, status))
	assert.Equal(t, "Cleaned 5 journal entries.\n", stdout.String())

	status, stdout, _ = newBufferedStatus(config)
	assert.Equal(t, ExitSuccess, ToolHistory(&Options{}, config, status))
	assert.Empty(t, stdout.String())
}

func TestToolsNeedJournal(t *testing.T) {
	config := NewConfig()
	status, _, stderr := newBufferedStatus(config)
	assert.Equal(t, ExitFailure, ToolHistory(&Options{}, config, status))
	assert.Equal(t, ExitFailure, ToolClean(&Options{}, config, status))
	assert.Contains(t, stderr.String(), "sotest: error: no journal configured")
}
