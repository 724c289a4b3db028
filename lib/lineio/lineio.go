// Package lineio provides exact-read and exact-write primitives used by
// the HTTP codec. Reads never consume bytes past what was asked for,
// which matters when the same stream is later handed to a TLS handshake
// or to the next message on a persistent connection.
package lineio

import (
	"io"

	"github.com/pkg/errors"
)

var ErrMissingCR = errors.New("missing CR before LF")

// ReadLineCRLF reads a single CRLF-terminated line, one byte at a time,
// and returns it without the terminator. An empty line ("\r\n") yields "".
func ReadLineCRLF(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = io.EOF
			}
			return "", err
		}
		if buf[0] == '\n' {
			break
		}
		line = append(line, buf[0])
	}

	if len(line) == 0 || line[len(line)-1] != '\r' {
		return "", ErrMissingCR
	}

	return string(line[:len(line)-1]), nil
}

// WriteFull writes all of buf to w, retrying short writes.
func WriteFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
