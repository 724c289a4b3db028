package httpmsg

import (
	"io"
	"net"
	"strings"

	"github.com/pkg/errors"

	"ezhttp/lib/lineio"
	"ezhttp/uri"
)

// Sendable is anything that can serialize itself onto an outbound byte
// stream.
type Sendable interface {
	Send(w io.Writer) error
}

// Request is one HTTP request. Peer is set on the server side only.
type Request struct {
	URL     uri.URL
	Method  string
	Headers Headers
	Body    Body
	Peer    net.Addr
}

func NewRequest(method string, u uri.URL) *Request {
	return &Request{Method: method, URL: u}
}

// ReadRequest parses a request from r: the request line (the trailing
// HTTP-version token is accepted but not validated), then headers, then
// the body per ReadBody. A read failure on the first byte surfaces as
// io.EOF so callers can tell a closed-down peer from a protocol error;
// transport errors (deadline expiry, resets) pass through untouched.
func ReadRequest(r io.Reader, peer net.Addr) (*Request, error) {
	line, err := lineio.ReadLineCRLF(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, lineio.ErrMissingCR) {
			return nil, ErrInvalidRequestLine
		}
		return nil, err
	}

	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return nil, ErrInvalidRequestLine
	}

	u, err := uri.Parse(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "parsing request target")
	}

	headers, err := ReadHeaders(r)
	if err != nil {
		return nil, err
	}

	body, err := ReadBody(r, headers)
	if err != nil {
		return nil, err
	}

	return &Request{
		URL:     u,
		Method:  parts[0],
		Headers: headers,
		Body:    body,
		Peer:    peer,
	}, nil
}

// Send writes the request line, headers, the separating blank line and
// the body. Writes are fail-fast.
func (req *Request) Send(w io.Writer) error {
	head := req.Method + " " + req.URL.RequestTarget() + " HTTP/1.1\r\n"
	if err := lineio.WriteFull(w, []byte(head)); err != nil {
		return ErrWriteHead
	}

	if err := req.Headers.Send(w); err != nil {
		return err
	}
	if err := lineio.WriteFull(w, []byte("\r\n")); err != nil {
		return ErrWriteBody
	}

	return req.Body.Send(w)
}

// Multipart decodes the body using the boundary declared in the
// Content-Type header.
func (req *Request) Multipart() ([]Part, bool) {
	boundary, ok := contentBoundary(&req.Headers)
	if !ok {
		return nil, false
	}
	return req.Body.AsMultipart(boundary), true
}

// SetMultipart encodes parts under a fresh boundary and stamps the
// Content-Type header accordingly.
func (req *Request) SetMultipart(parts []Part) {
	boundary := RandomBoundary()
	req.Headers.Put("Content-Type", "multipart/form-data; boundary="+boundary)
	req.Body = FromMultipart(parts, boundary)
}

func contentBoundary(h *Headers) (string, bool) {
	contentType, ok := h.Get("Content-Type")
	if !ok {
		return "", false
	}
	for _, param := range strings.Split(contentType, ";") {
		param = strings.TrimSpace(param)
		if boundary, found := strings.CutPrefix(param, "boundary="); found {
			return boundary, true
		}
	}
	return "", false
}
