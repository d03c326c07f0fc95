package sotest_go

type CommandKind int8

const (
	CMD_USE CommandKind = iota
	CMD_CALL
	CMD_END
)

var kCommandWords = [...]string{
	CMD_USE:  "use",
	CMD_CALL: "call",
}

func (k CommandKind) String() string {
	if k >= CMD_USE && k < CMD_END {
		return kCommandWords[k]
	}
	return "unknown"
}

// Command is one completed statement. Argument aliases the interpreter's
// working buffer and is only valid until RunCommand returns.
type Command struct {
	Kind     CommandKind
	Argument []byte
	Line     int
}

// CommandRunner executes completed commands. A non-nil error is fatal to
// the run and stops interpretation.
type CommandRunner interface {
	RunCommand(cmd Command) error
}
