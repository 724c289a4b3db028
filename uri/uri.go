// Package uri parses and serializes the URL form used on HTTP request
// lines: absolute ("scheme://host[:port]/path?query#fragment") and
// path-relative ("/path?query#fragment").
package uri

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalid = errors.New("malformed url")

// URL is a value type; copying it shares only the Query map, so callers
// that mutate Query after copying should Clone first.
type URL struct {
	Scheme   string
	Host     string
	Port     uint16
	Path     string
	Query    map[string]string
	Fragment string
}

// DefaultPort reports the well-known port for a scheme.
func DefaultPort(scheme string) (uint16, bool) {
	switch scheme {
	case "http":
		return 80, true
	case "https":
		return 443, true
	}
	return 0, false
}

// IsAbsolute reports whether the URL carries a scheme and host.
func (u *URL) IsAbsolute() bool {
	return u.Host != ""
}

func (u *URL) Clone() URL {
	clone := *u
	clone.Query = make(map[string]string, len(u.Query))
	for k, v := range u.Query {
		clone.Query[k] = v
	}
	return clone
}

// HostPort returns "host:port", substituting the scheme default when the
// port is unset.
func (u *URL) HostPort() string {
	port := u.Port
	if port == 0 {
		port, _ = DefaultPort(u.Scheme)
	}
	return u.Host + ":" + strconv.FormatUint(uint64(port), 10)
}

// RequestTarget serializes the path, query and fragment, the form that
// goes on a request line. Query order is unspecified.
func (u *URL) RequestTarget() string {
	b := new(strings.Builder)

	if u.Path == "" {
		b.WriteByte('/')
	} else {
		b.WriteString(u.Path)
	}

	sep := byte('?')
	for k, v := range u.Query {
		b.WriteByte(sep)
		b.WriteString(QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(QueryEscape(v))
		sep = '&'
	}

	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}

	return b.String()
}

// String serializes the URL. The port is omitted when it equals the
// scheme default.
func (u *URL) String() string {
	if !u.IsAbsolute() {
		return u.RequestTarget()
	}

	b := new(strings.Builder)
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)

	if def, ok := DefaultPort(u.Scheme); !ok || u.Port != def {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(u.Port), 10))
	}

	b.WriteString(u.RequestTarget())

	return b.String()
}

// Parse parses an absolute or path-relative URL. Absolute URLs with a
// scheme other than http/https must carry an explicit port, since no
// default can be inferred.
func Parse(raw string) (URL, error) {
	if strings.HasPrefix(raw, "/") {
		return parseTarget(raw)
	}

	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return URL{}, errors.Wrap(ErrInvalid, "no scheme separator and no leading slash")
	}

	hostPort := rest
	target := "/"
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostPort, target = rest[:i], rest[i:]
	}

	u, err := parseTarget(target)
	if err != nil {
		return URL{}, err
	}
	u.Scheme = scheme

	host, rawPort, found := strings.Cut(hostPort, ":")
	u.Host = host
	if found {
		port, err := strconv.ParseUint(rawPort, 10, 16)
		if err != nil {
			return URL{}, errors.Wrapf(ErrInvalid, "port %q is not numeric", rawPort)
		}
		u.Port = uint16(port)
	} else {
		def, ok := DefaultPort(u.Scheme)
		if !ok {
			return URL{}, errors.Wrapf(ErrInvalid, "no default port for scheme %q", u.Scheme)
		}
		u.Port = def
	}

	return u, nil
}

func parseTarget(raw string) (URL, error) {
	raw, fragment, _ := strings.Cut(raw, "#")
	path, rawQuery, _ := strings.Cut(raw, "?")

	query, err := parseQuery(rawQuery)
	if err != nil {
		return URL{}, err
	}

	return URL{Path: path, Query: query, Fragment: fragment}, nil
}

// parseQuery percent-decodes key and value of each "&"-delimited pair
// independently. A pair without "=" yields an empty value.
func parseQuery(rawQuery string) (map[string]string, error) {
	query := make(map[string]string)
	if rawQuery == "" {
		return query, nil
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := QueryUnescape(rawKey)
		if err != nil {
			return nil, errors.Wrap(ErrInvalid, err.Error())
		}
		value, err := QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrap(ErrInvalid, err.Error())
		}

		query[key] = value
	}

	return query, nil
}
