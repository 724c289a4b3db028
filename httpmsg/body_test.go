package httpmsg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBodyContentLength(t *testing.T) {
	h := NewHeaders(Field{Name: "Content-Length", Value: "5"})

	b, err := ReadBody(strings.NewReader("hellorest"), h)
	require.NoError(t, err)
	assert.Equal(t, "hello", b.Text())
}

func TestReadBodyContentLengthErrors(t *testing.T) {
	testcases := []struct {
		desc   string
		length string
		input  string
		want   error
	}{
		{desc: "non-numeric", length: "five", input: "hello", want: ErrInvalidContentLength},
		{desc: "negative", length: "-1", input: "hello", want: ErrInvalidContentLength},
		{desc: "short read", length: "10", input: "hello", want: ErrInvalidContent},
		{desc: "absurd declared size", length: "4611686018427387904", input: "hello", want: ErrInvalidContent},
		{desc: "above uint63", length: "9223372036854775808", input: "hello", want: ErrInvalidContentLength},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			h := NewHeaders(Field{Name: "Content-Length", Value: tc.length})

			_, err := ReadBody(strings.NewReader(tc.input), h)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadBodyChunked(t *testing.T) {
	testcases := []struct {
		desc  string
		input string
		want  string
	}{
		{
			desc:  "two chunks",
			input: "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n",
			want:  "Wikipedia",
		},
		{
			desc:  "chunk extension ignored",
			input: "4;ext=1\r\nWiki\r\n0\r\n\r\n",
			want:  "Wiki",
		},
		{
			desc:  "trailers discarded",
			input: "3\r\nabc\r\n0\r\nExpires: never\r\n\r\n",
			want:  "abc",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			h := NewHeaders(Field{Name: "Transfer-Encoding", Value: "chunked"})

			b, err := ReadBody(strings.NewReader(tc.input), h)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.Text())
		})
	}
}

func TestReadBodyChunkedListedCoding(t *testing.T) {
	h := NewHeaders(Field{Name: "Transfer-Encoding", Value: "gzip, Chunked"})

	b, err := ReadBody(strings.NewReader("2\r\nhi\r\n0\r\n\r\n"), h)
	require.NoError(t, err)
	assert.Equal(t, "hi", b.Text())
}

func TestReadBodyChunkedMalformed(t *testing.T) {
	testcases := []struct {
		desc  string
		input string
	}{
		{desc: "bad size", input: "xyz\r\nWiki\r\n0\r\n\r\n"},
		{desc: "missing chunk terminator", input: "4\r\nWikipedia"},
		{desc: "absurd chunk size", input: "7FFFFFFFFFFFFFFF\r\nWiki\r\n0\r\n\r\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			h := NewHeaders(Field{Name: "Transfer-Encoding", Value: "chunked"})

			_, err := ReadBody(strings.NewReader(tc.input), h)
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestReadBodyNoFraming(t *testing.T) {
	b, err := ReadBody(strings.NewReader("leftover"), Headers{})
	require.NoError(t, err)
	assert.Empty(t, b.Bytes())
}

func TestBodyForm(t *testing.T) {
	b := FromForm(map[string]string{"q": "a b"})
	assert.Equal(t, "q=a%20b", b.Text())

	form, err := b.AsForm()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"q": "a b"}, form)
}

func TestBodyFormLeadingQuestionMark(t *testing.T) {
	form, err := Body("?a=1&flag").AsForm()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "flag": ""}, form)
}

func TestBodyJSON(t *testing.T) {
	b, err := FromJSON(map[string]int{"n": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"n":3}`, b.Text())

	var got map[string]int
	require.NoError(t, b.AsJSON(&got))
	assert.Equal(t, map[string]int{"n": 3}, got)

	var generic any
	require.NoError(t, b.AsJSON(&generic))
	assert.Equal(t, map[string]any{"n": float64(3)}, generic)

	assert.Error(t, Body("{").AsJSON(&generic))
}
