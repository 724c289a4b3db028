// Package client sends single HTTP/1.1 requests over fresh
// connections, optionally tunneled through a proxy and wrapped in TLS.
package client

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"ezhttp/httpmsg"
	"ezhttp/uri"
)

var (
	ErrUnknownScheme = errors.New("scheme is neither http nor https")
	ErrRelativeURL   = errors.New("request url has no host")
)

type Client struct {
	opts Options

	logger *slog.Logger
	clock  clock.Clock
}

func New(logger *slog.Logger, clock clock.Clock, opts Options) *Client {
	return &Client{
		opts:   opts,
		logger: logger,
		clock:  clock,
	}
}

// Send connects to the request's target, writes the request and reads
// one response. The connection is always closed before returning; each
// call dials fresh. The request is stamped with the configured default
// headers as fallbacks, then Connection, Host and Content-Length are
// forced to canonical values.
func (c *Client) Send(ctx context.Context, req *httpmsg.Request) (*httpmsg.Response, error) {
	if !req.URL.IsAbsolute() {
		return nil, ErrRelativeURL
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, errors.Wrap(ErrUnknownScheme, req.URL.Scheme)
	}

	for _, field := range c.opts.Headers.Entries() {
		req.Headers.PutDefault(field.Name, field.Value)
	}
	req.Headers.Put("Connection", "close")
	req.Headers.Put("Host", hostHeader(req.URL))
	req.Headers.Put("Content-Length", strconv.Itoa(len(req.Body)))

	target := req.URL.HostPort()
	c.logger.Debug("connecting", "target", target, "method", req.Method)

	conn, err := c.connect(ctx, target)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if req.URL.Scheme == "https" {
		if conn, err = c.wrapTLS(ctx, conn, req.URL.Host); err != nil {
			return nil, err
		}
	}

	if d := c.opts.Timeout.Write; d > 0 {
		if err := conn.SetWriteDeadline(c.clock.Now().Add(d)); err != nil {
			return nil, errors.Wrap(err, "setting write deadline")
		}
	}
	if err := req.Send(conn); err != nil {
		return nil, errors.Wrap(err, "sending request")
	}

	if d := c.opts.Timeout.Read; d > 0 {
		if err := conn.SetReadDeadline(c.clock.Now().Add(d)); err != nil {
			return nil, errors.Wrap(err, "setting read deadline")
		}
	}
	res, err := httpmsg.ReadResponse(conn)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	return res, nil
}

// hostHeader renders the Host header value, omitting the port when it
// is the scheme default.
func hostHeader(u uri.URL) string {
	if def, ok := uri.DefaultPort(u.Scheme); ok && (u.Port == 0 || u.Port == def) {
		return u.Host
	}
	return u.HostPort()
}
