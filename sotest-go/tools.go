package sotest_go

import (
	"fmt"
	"io"
	"time"
)

// Subtools, accessible via "-t foo".
type Tool struct {
	// Short name of the tool.
	Name string

	// Description (shown in "-t list").
	Desc string

	// Implementation of the tool.
	Func func(options *Options, config *Config, status *StatusPrinter) ExitStatus
}

// How many calls "-t history" shows.
const kHistoryLimit = 20

var kTools []*Tool

func init() {
	kTools = []*Tool{
		{"history", "show the most recent journaled calls", ToolHistory},
		{"clean", "forget everything recorded in the journal", ToolClean},
	}
}

// ChooseTool finds the tool named name. "list" prints the available tools
// and returns nil, as does an unknown name after reporting it.
func ChooseTool(name string, stdout, stderr io.Writer) *Tool {
	if name == "list" {
		fmt.Fprintf(stdout, "%s subtools:\n", kProgName)
		for _, tool := range kTools {
			fmt.Fprintf(stdout, "%11s  %s\n", tool.Name, tool.Desc)
		}
		return nil
	}

	words := []string{}
	for _, tool := range kTools {
		if tool.Name == name {
			return tool
		}
		words = append(words, tool.Name)
	}

	if suggestion := SpellcheckString(name, words...); suggestion != "" {
		fmt.Fprintf(stderr, "%s: error: unknown tool '%s', did you mean '%s'?\n", kProgName, name, suggestion)
	} else {
		fmt.Fprintf(stderr, "%s: error: unknown tool '%s'\n", kProgName, name)
	}
	return nil
}

func requireJournal(config *Config, status *StatusPrinter) bool {
	if config.Journal == "" {
		status.Error("no journal configured (use -r FILE or $SOTEST_JOURNAL)")
		return false
	}
	return true
}

func ToolHistory(options *Options, config *Config, status *StatusPrinter) ExitStatus {
	if !requireJournal(config, status) {
		return ExitFailure
	}
	rows, err := ReadHistory(config.Journal, kHistoryLimit)
	if err != nil {
		status.Error("%v", err)
		return ExitFailure
	}
	for _, row := range rows {
		status.Plain("%s", formatHistoryRow(row))
	}
	return ExitSuccess
}

func formatHistoryRow(row HistoryRow) string {
	outcome := "ok"
	switch {
	case !row.Found:
		outcome = "missing"
	case !row.Succeeded:
		outcome = "FAILED"
	}
	started := time.UnixMilli(row.StartTime).Format(time.DateTime)
	if row.Library == "" {
		return fmt.Sprintf("%s  %-7s  %s (line %d)", started, outcome, row.Symbol, row.Line)
	}
	return fmt.Sprintf("%s  %-7s  %s in %s (line %d)", started, outcome, row.Symbol, row.Library, row.Line)
}

func ToolClean(options *Options, config *Config, status *StatusPrinter) ExitStatus {
	if !requireJournal(config, status) {
		return ExitFailure
	}
	journal, err := OpenJournal(config.Journal)
	if err != nil {
		status.Error("%v", err)
		return ExitFailure
	}
	defer journal.Close()

	count, err := journal.Clean()
	if err != nil {
		status.Error("failed to clean journal: %v", err)
		return ExitFailure
	}
	status.Plain("Cleaned %d journal entries.", count)
	return ExitSuccess
}
