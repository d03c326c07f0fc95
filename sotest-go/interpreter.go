package sotest_go

import (
	"bytes"
	"fmt"
)

type ParserState int8

const (
	STATE_EXPECT_CMD ParserState = iota
	STATE_EXPECT_ARG
	STATE_EXPECT_EOL
	STATE_SKIP_TO_EOL
)

const kComment = ';'

// Longest path accepted by `use`, including the terminating NUL the loader
// needs.
const kPathMax = 4096

// Session is the parser state of one script run. It survives buffer refills
// so a statement may be split across any number of reads.
type Session struct {
	state_   ParserState
	pending_ CommandKind

	// Line number for diagnostics, starting at 1.
	line_ int

	interactive_ bool

	// Set by Finish: the bytes handed over are all there will ever be.
	at_eof_ bool

	parse_errors_ int

	runner_ CommandRunner
	status_ Status
}

func NewSession(runner CommandRunner, status Status, interactive bool) *Session {
	ret := Session{}
	ret.state_ = STATE_EXPECT_CMD
	ret.pending_ = CMD_END
	ret.line_ = 1
	ret.interactive_ = interactive
	ret.runner_ = runner
	ret.status_ = status
	return &ret
}

func (this *Session) Line() int { return this.line_ }

func (this *Session) State() ParserState { return this.state_ }

func (this *Session) ParseErrors() int { return this.parse_errors_ }

func (this *Session) warn(msg string) {
	this.parse_errors_++
	gParseErrors.Add(1)
	if this.interactive_ {
		this.status_.Warning("%s", msg)
	} else {
		this.status_.Warning("%s", (&ParseError{Msg: msg, Line: this.line_}).Error())
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func isTokenEnd(c byte) bool { return isBlank(c) || c == '\n' || c == kComment }

func tokenEnd(b []byte) int {
	for i, c := range b {
		if isTokenEnd(c) {
			return i
		}
	}
	return -1
}

// Interpret consumes as many complete statements as possible from the front
// of b and returns how many trailing bytes could not be parsed yet. Those
// bytes must be presented again, followed by more input, on the next call.
// In interactive mode it returns after every newline.
func (this *Session) Interpret(b []byte) (int, error) {
	for len(b) > 0 {
		c := b[0]

		if isBlank(c) {
			b = b[1:]
			continue
		}

		if c == '\n' {
			b = b[1:]
			if this.state_ == STATE_EXPECT_ARG {
				this.warn("No argument provided for command")
			}
			this.line_++
			this.state_ = STATE_EXPECT_CMD
			if this.interactive_ {
				return len(b), nil
			}
			continue
		}

		if c == kComment {
			b = b[1:]
			if this.state_ == STATE_EXPECT_ARG {
				this.warn("No argument provided for command")
			}
			this.state_ = STATE_SKIP_TO_EOL
			continue
		}

		switch this.state_ {
		case STATE_SKIP_TO_EOL:
			b = b[1:]

		case STATE_EXPECT_CMD:
			n, wait := this.matchCommand(b)
			if wait {
				return len(b), nil
			}
			b = b[n:]

		case STATE_EXPECT_ARG:
			end := tokenEnd(b)
			if end < 0 {
				if !this.at_eof_ {
					return len(b), nil
				}
				end = len(b)
			}
			if this.pending_ == CMD_USE && end > kPathMax-1 {
				this.warn("Argument to 'use' exceeds PATH_MAX")
				this.state_ = STATE_SKIP_TO_EOL
				continue
			}
			cmd := Command{Kind: this.pending_, Argument: b[:end], Line: this.line_}
			b = b[end:]
			this.state_ = STATE_EXPECT_EOL
			if err := this.runner_.RunCommand(cmd); err != nil {
				return len(b), err
			}

		case STATE_EXPECT_EOL:
			this.warn("Garbage at end of line")
			this.state_ = STATE_SKIP_TO_EOL
		}
	}
	return len(b), nil
}

// matchCommand recognizes a keyword at the start of b. It returns the number
// of bytes consumed, or wait when b may be the beginning of a keyword that the
// next read will complete.
func (this *Session) matchCommand(b []byte) (int, bool) {
	probably_read_partially := false
	for kind := CMD_USE; kind < CMD_END; kind++ {
		word := kCommandWords[kind]
		if len(b) < len(word)+1 {
			if this.at_eof_ && string(b) == word {
				this.state_ = STATE_EXPECT_ARG
				this.pending_ = kind
				return len(word), false
			}
			if bytes.HasPrefix([]byte(word), b) {
				probably_read_partially = true
			}
			continue
		}
		if !bytes.HasPrefix(b, []byte(word)) {
			continue
		}
		// The keyword must be a separate word. The separator itself is
		// left for the main loop, which reports a missing argument on a
		// newline.
		if next := b[len(word)]; isBlank(next) || next == '\n' {
			this.state_ = STATE_EXPECT_ARG
			this.pending_ = kind
			return len(word), false
		}
		break
	}

	end := tokenEnd(b)
	if !this.interactive_ && !this.at_eof_ && (probably_read_partially || end < 0) {
		return 0, true
	}
	if end < 0 {
		end = len(b)
	}

	msg := fmt.Sprintf("Unrecognized command '%s'", b[:end])
	if suggestion := SpellcheckString(string(b[:end]), kCommandWords[:]...); suggestion != "" {
		msg += fmt.Sprintf(", did you mean '%s'?", suggestion)
	}
	this.warn(msg)
	// ignore everything else on this line
	this.state_ = STATE_SKIP_TO_EOL
	return 0, false
}

// Finish interprets the bytes left over at end of stream, treating the end
// of stream as the end of the last line.
func (this *Session) Finish(b []byte) error {
	this.at_eof_ = true
	for len(b) > 0 {
		left, err := this.Interpret(b)
		if err != nil {
			return err
		}
		if left == len(b) {
			break
		}
		b = b[len(b)-left:]
	}
	if this.state_ == STATE_EXPECT_ARG {
		this.warn("No argument provided for command")
	}
	this.state_ = STATE_EXPECT_CMD
	return nil
}

// Overflow is called when a single token fills the whole working buffer.
// The buffered bytes are dropped by the caller and the rest of the line is
// skipped.
func (this *Session) Overflow() {
	this.warn("Token exceeds input buffer size")
	this.state_ = STATE_SKIP_TO_EOL
}
