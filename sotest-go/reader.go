package sotest_go

import (
	"io"

	"github.com/segmentio/fasthash/fnv1a"
)

// Size of the working buffer; a single token never spans more than this.
const kBufferSize = 1 << 16

// ReadLoop reads src in chunks into a fixed working buffer and feeds them
// to session. Bytes the session could not parse yet are moved to the start
// of the buffer and presented again with the next chunk. source names the
// input in read errors ("stdin" or "file <path>").
//
// It returns the FNV-1a hash of everything read.
func ReadLoop(src io.Reader, source string, session *Session) (uint64, error) {
	return readLoop(src, source, session, make([]byte, kBufferSize))
}

func readLoop(src io.Reader, source string, session *Session, buf []byte) (uint64, error) {
	hash := fnv1a.Init64
	b_left := 0 // uninterpreted bytes at the start of buf

	for {
		b_read, err := src.Read(buf[b_left:])
		if b_read > 0 {
			hash = fnv1a.AddBytes64(hash, buf[b_left:b_left+b_read])
			var ierr error
			b_left, ierr = interpretBuffered(session, buf, b_left+b_read)
			if ierr != nil {
				return hash, ierr
			}
			if b_left == len(buf) {
				session.Overflow()
				b_left = 0
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return hash, &ResourceError{Op: "Error while reading", Source: source, Err: err}
		}
	}

	return hash, session.Finish(buf[:b_left])
}

// interpretBuffered runs the session over buf[:n] and moves the unconsumed
// tail to the front of buf. An interactive session stops after each line, so
// it is driven again for as long as it makes progress.
func interpretBuffered(session *Session, buf []byte, n int) (int, error) {
	for {
		left, err := session.Interpret(buf[:n])
		if err != nil {
			return 0, err
		}
		consumed := n - left
		if consumed > 0 && left > 0 {
			copy(buf, buf[consumed:n])
		}
		n = left
		if consumed == 0 || left == 0 || !session.interactive_ {
			return left, nil
		}
	}
}
