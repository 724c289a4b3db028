package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsolute(t *testing.T) {
	u, err := Parse("https://meex.lol:456/dku?key=value&key2=value2#hex_id")
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "meex.lol", u.Host)
	assert.Equal(t, uint16(456), u.Port)
	assert.Equal(t, "/dku", u.Path)
	assert.Equal(t, map[string]string{"key": "value", "key2": "value2"}, u.Query)
	assert.Equal(t, "hex_id", u.Fragment)

	// Query order is unspecified, so compare by parsing back.
	reparsed, err := Parse(u.String())
	require.NoError(t, err)
	assert.Equal(t, u, reparsed)
}

func TestParseTarget(t *testing.T) {
	u, err := Parse("/dku?key=value&key2=value2#hex_id")
	require.NoError(t, err)

	assert.False(t, u.IsAbsolute())
	assert.Equal(t, "/dku", u.Path)
	assert.Equal(t, map[string]string{"key": "value", "key2": "value2"}, u.Query)
	assert.Equal(t, "hex_id", u.Fragment)

	s := u.String()
	assert.Contains(t, []string{
		"/dku?key=value&key2=value2#hex_id",
		"/dku?key2=value2&key=value#hex_id",
	}, s)
}

func TestParseDefaultPort(t *testing.T) {
	testcases := []struct {
		desc  string
		input string
		port  uint16
	}{
		{desc: "http", input: "http://example.com/", port: 80},
		{desc: "https", input: "https://example.com/", port: 443},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			u, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.port, u.Port)
		})
	}
}

func TestParseBareHost(t *testing.T) {
	u, err := Parse("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "/", u.RequestTarget())
	assert.Equal(t, "example.com:80", u.HostPort())
}

func TestStringOmitsDefaultPort(t *testing.T) {
	testcases := []struct {
		desc     string
		url      URL
		expected string
	}{
		{
			desc:     "http default",
			url:      URL{Scheme: "http", Host: "example.com", Port: 80, Path: "/"},
			expected: "http://example.com/",
		},
		{
			desc:     "https default",
			url:      URL{Scheme: "https", Host: "example.com", Port: 443, Path: "/"},
			expected: "https://example.com/",
		},
		{
			desc:     "explicit port kept",
			url:      URL{Scheme: "http", Host: "example.com", Port: 8080, Path: "/"},
			expected: "http://example.com:8080/",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.url.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	testcases := []struct {
		desc  string
		input string
	}{
		{desc: "no separator", input: "example.com/path"},
		{desc: "bad port", input: "http://example.com:banana/"},
		{desc: "port out of range", input: "http://example.com:70000/"},
		{desc: "unknown scheme without port", input: "gopher://example.com/"},
		{desc: "bad query escape", input: "/path?key=%zz"},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseUnknownSchemeWithPort(t *testing.T) {
	u, err := Parse("gopher://example.com:70/")
	require.NoError(t, err)
	assert.Equal(t, uint16(70), u.Port)
	assert.Equal(t, "gopher://example.com:70/", u.String())
}

func TestParseQueryEscapes(t *testing.T) {
	u, err := Parse("/search?q=hello%20world&flag")
	require.NoError(t, err)
	assert.Equal(t, "hello world", u.Query["q"])
	assert.Equal(t, "", u.Query["flag"])
}

func TestQueryEscapeRoundTrip(t *testing.T) {
	s := "a b&c=d/ä"
	escaped := QueryEscape(s)
	unescaped, err := QueryUnescape(escaped)
	require.NoError(t, err)
	assert.Equal(t, s, unescaped)
}
