package httpmsg

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezhttp/uri"
)

func TestReadRequest(t *testing.T) {
	input := "POST /submit?q=1 HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello"

	req, err := ReadRequest(strings.NewReader(input), nil)
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/submit", req.URL.Path)
	assert.Equal(t, map[string]string{"q": "1"}, req.URL.Query)
	host, _ := req.Headers.Get("host")
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "hello", req.Body.Text())
}

func TestReadRequestErrors(t *testing.T) {
	testcases := []struct {
		desc  string
		input string
		want  error
	}{
		{desc: "closed peer", input: "", want: io.EOF},
		{desc: "one token", input: "GET\r\n\r\n", want: ErrInvalidRequestLine},
		{desc: "bare lf line", input: "GET / HTTP/1.1\n\r\n", want: ErrInvalidRequestLine},
		{desc: "bad target", input: "GET example.com HTTP/1.1\r\n\r\n", want: uri.ErrInvalid},
		{desc: "bad headers", input: "GET / HTTP/1.1\r\nHost example.com\r\n\r\n", want: ErrInvalidHeaders},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := ReadRequest(strings.NewReader(tc.input), nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRequestRoundTrip(t *testing.T) {
	u, err := uri.Parse("http://example.com/items?id=7")
	require.NoError(t, err)

	req := NewRequest("GET", u)
	req.Headers.Put("Host", "example.com")
	req.Headers.Put("Content-Length", "4")
	req.Body = FromText("data")

	var buf bytes.Buffer
	require.NoError(t, req.Send(&buf))

	assert.Equal(t, "GET /items?id=7 HTTP/1.1\r\n"+
		"Host: example.com\r\n"+
		"Content-Length: 4\r\n"+
		"\r\n"+
		"data", buf.String())

	got, err := ReadRequest(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "GET", got.Method)
	assert.Equal(t, "/items", got.URL.Path)
	assert.Equal(t, req.Headers.Entries(), got.Headers.Entries())
	assert.Equal(t, "data", got.Body.Text())
}

func TestRequestMultipart(t *testing.T) {
	u, err := uri.Parse("/upload")
	require.NoError(t, err)

	parts := []Part{{Name: "file", Body: FromText("hi"), Filename: "a.txt", ContentType: "text/plain"}}

	req := NewRequest("POST", u)
	req.SetMultipart(parts)

	contentType, ok := req.Headers.Get("Content-Type")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))

	got, ok := req.Multipart()
	require.True(t, ok)
	assert.Equal(t, parts, got)
}
