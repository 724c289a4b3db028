package httpmsg

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"ezhttp/lib/lineio"
	"ezhttp/uri"
)

// Body is an owned byte payload. The As* views are computed on demand
// and never cached.
type Body []byte

func FromText(text string) Body { return Body(text) }

// FromForm url-encodes the map into "k=v&k2=v2" form. Pair order is
// unspecified.
func FromForm(form map[string]string) Body {
	pairs := make([]string, 0, len(form))
	for k, v := range form {
		pairs = append(pairs, uri.QueryEscape(k)+"="+uri.QueryEscape(v))
	}
	return Body(strings.Join(pairs, "&"))
}

func FromJSON(v any) (Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json body")
	}
	return Body(data), nil
}

func (b Body) Bytes() []byte { return []byte(b) }

func (b Body) Text() string { return string(b) }

// AsForm decodes the body as an url-encoded form. A leading "?" is
// tolerated; a pair without "=" yields an empty value.
func (b Body) AsForm() (map[string]string, error) {
	text := strings.TrimPrefix(b.Text(), "?")

	form := make(map[string]string)
	if text == "" {
		return form, nil
	}

	for _, pair := range strings.Split(text, "&") {
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := uri.QueryUnescape(rawKey)
		if err != nil {
			return nil, errors.Wrap(err, "decoding form key")
		}
		value, err := uri.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrap(err, "decoding form value")
		}
		form[key] = value
	}

	return form, nil
}

// AsJSON decodes the body into v under the standard json rules.
// Decoding into *any yields the generic value model (map[string]any,
// []any, string, float64, bool, nil).
func (b Body) AsJSON(v any) error {
	if err := json.Unmarshal(b.Bytes(), v); err != nil {
		return errors.Wrap(err, "parsing json body")
	}
	return nil
}

// ReadBody reads the message body framed by the given headers: exactly
// Content-Length bytes, or chunked transfer coding when Transfer-Encoding
// carries the "chunked" token. With neither header the body is empty;
// see the package doc for why read-to-EOF is not attempted.
func ReadBody(r io.Reader, h Headers) (Body, error) {
	if raw, ok := h.Get("Content-Length"); ok {
		size, err := strconv.ParseUint(raw, 10, 63)
		if err != nil {
			return nil, ErrInvalidContentLength
		}

		// The declared size is untrusted, so the buffer grows with
		// the bytes that actually arrive.
		buf := new(bytes.Buffer)
		if _, err := io.CopyN(buf, r, int64(size)); err != nil {
			return nil, ErrInvalidContent
		}
		return buf.Bytes(), nil
	}

	if coding, ok := h.Get("Transfer-Encoding"); ok && hasToken(coding, "chunked") {
		return readChunked(r)
	}

	return nil, nil
}

// hasToken reports whether the comma-separated list contains token,
// case-insensitively and ignoring surrounding whitespace.
func hasToken(list, token string) bool {
	for _, part := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// readChunked decodes chunked transfer coding: a hex size line, that
// many data bytes plus CRLF, repeated until a zero-size chunk. Trailer
// lines after the last chunk are read and discarded.
func readChunked(r io.Reader) (Body, error) {
	var data []byte
	for {
		line, err := lineio.ReadLineCRLF(r)
		if err != nil {
			return nil, ErrInvalidContent
		}

		// Chunk extensions follow the size after ';'. Sizes beyond
		// 32 bits are rejected rather than allocated.
		rawSize, _, _ := strings.Cut(line, ";")
		size, err := strconv.ParseUint(strings.TrimSpace(rawSize), 16, 32)
		if err != nil {
			return nil, ErrInvalidContent
		}

		if size == 0 {
			break
		}

		buf := new(bytes.Buffer)
		if _, err := io.CopyN(buf, r, int64(size)+2); err != nil {
			return nil, ErrInvalidContent
		}
		chunk := buf.Bytes()
		if string(chunk[size:]) != "\r\n" {
			return nil, ErrInvalidContent
		}
		data = append(data, chunk[:size]...)
	}

	// Discard trailers up to the terminating empty line.
	for {
		line, err := lineio.ReadLineCRLF(r)
		if err != nil {
			return nil, ErrInvalidContent
		}
		if line == "" {
			return data, nil
		}
	}
}

// Send writes the raw body bytes.
func (b Body) Send(w io.Writer) error {
	if err := lineio.WriteFull(w, b.Bytes()); err != nil {
		return ErrWriteBody
	}
	return nil
}
