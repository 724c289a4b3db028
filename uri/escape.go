package uri

import (
	"strings"

	"github.com/pkg/errors"
)

func hex(c byte) (h [2]byte) {
	const hexSet = "0123456789ABCDEF"
	h[0] = hexSet[c>>4]
	h[1] = hexSet[c&0xF]
	return
}

func unhex(h [2]byte) (c byte, ok bool) {
	hi, ok1 := hexToNum(h[0])
	lo, ok2 := hexToNum(h[1])
	return (hi << 4) | lo, ok1 && ok2
}

func hexToNum(h byte) (byte, bool) {
	switch {
	case '0' <= h && h <= '9':
		return h - '0', true
	case 'a' <= h && h <= 'f':
		return h - 'a' + 10, true
	case 'A' <= h && h <= 'F':
		return h - 'A' + 10, true
	}
	return 0, false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.3
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// QueryEscape percent-encodes every byte of s outside the unreserved set.
func QueryEscape(s string) string {
	b := new(strings.Builder)
	b.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		h := hex(c)
		b.Write([]byte{'%', h[0], h[1]})
	}

	return b.String()
}

// QueryUnescape reverses QueryEscape.
func QueryUnescape(s string) (string, error) {
	b := new(strings.Builder)
	b.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if idx+2 >= len(s) {
			return "", errors.Errorf("truncated percent encoding: %q", s[idx:])
		}
		decoded, ok := unhex([2]byte{s[idx+1], s[idx+2]})
		if !ok {
			return "", errors.Errorf("percent encoding not properly applied: %q", s[idx:idx+3])
		}
		b.WriteByte(decoded)
		idx += 2
	}

	return b.String(), nil
}
