package httpmsg

import (
	"io"
	"strings"

	"ezhttp/lib/lineio"
)

const (
	StatusOK       = "200 OK"
	StatusNotFound = "404 Not Found"
)

// Response is one HTTP response. Status holds the code and reason
// phrase as they appear on the wire ("200 OK").
type Response struct {
	Status  string
	Headers Headers
	Body    Body
}

func NewResponse(status string) *Response {
	return &Response{Status: status}
}

// ReadResponse parses a response from r. Everything after the first
// space of the status line is retained as Status; the leading
// HTTP-version token is not validated.
func ReadResponse(r io.Reader) (*Response, error) {
	line, err := lineio.ReadLineCRLF(r)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	_, status, found := strings.Cut(line, " ")
	if !found {
		return nil, ErrInvalidStatus
	}

	headers, err := ReadHeaders(r)
	if err != nil {
		return nil, err
	}

	body, err := ReadBody(r, headers)
	if err != nil {
		return nil, err
	}

	return &Response{Status: status, Headers: headers, Body: body}, nil
}

// Send writes the status line, headers, the separating blank line and
// the body. Writes are fail-fast.
func (res *Response) Send(w io.Writer) error {
	if err := lineio.WriteFull(w, []byte("HTTP/1.1 "+res.Status+"\r\n")); err != nil {
		return ErrWriteHead
	}

	if err := res.Headers.Send(w); err != nil {
		return err
	}
	if err := lineio.WriteFull(w, []byte("\r\n")); err != nil {
		return ErrWriteBody
	}

	return res.Body.Send(w)
}

func (res *Response) Multipart() ([]Part, bool) {
	boundary, ok := contentBoundary(&res.Headers)
	if !ok {
		return nil, false
	}
	return res.Body.AsMultipart(boundary), true
}

func (res *Response) SetMultipart(parts []Part) {
	boundary := RandomBoundary()
	res.Headers.Put("Content-Type", "multipart/form-data; boundary="+boundary)
	res.Body = FromMultipart(parts, boundary)
}
