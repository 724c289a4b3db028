package client

import (
	"context"
	"encoding/base64"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/proxy"
	"h12.io/socks"

	"ezhttp/httpmsg"
	"ezhttp/lib/lineio"
)

var ErrConnect = errors.New("establishing connection failed")

// connect produces a transport connected to target ("host:port"),
// negotiating the configured proxy first. The connect timeout bounds
// the whole negotiation, handshakes included. Every failure mode,
// timeout expiry included, surfaces as ErrConnect.
func (c *Client) connect(ctx context.Context, target string) (net.Conn, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		conn net.Conn
		err  error
	}
	dialed := make(chan result, 1)
	go func() {
		conn, err := c.dialTunnel(ctx, target)
		dialed <- result{conn: conn, err: err}
	}()

	var expired <-chan time.Time
	if d := c.opts.Timeout.Connect; d > 0 {
		timer := c.clock.Timer(d)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case res := <-dialed:
		if res.err != nil {
			return nil, errors.Wrapf(ErrConnect, "%v", res.err)
		}
		return res.conn, nil
	case <-expired:
	case <-ctx.Done():
	}

	cancel()
	// The dial keeps running until cancellation reaches it. Reclaim
	// the connection if it completed anyway.
	go func() {
		if res := <-dialed; res.conn != nil {
			res.conn.Close()
		}
	}()

	return nil, errors.Wrap(ErrConnect, "tunnel negotiation interrupted")
}

func (c *Client) dialTunnel(ctx context.Context, target string) (net.Conn, error) {
	p := c.opts.Proxy
	switch p.kind {
	case proxyNone:
		var d net.Dialer
		return d.DialContext(ctx, "tcp", target)

	case proxyHTTP, proxyHTTPS:
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", p.addr)
		if err != nil {
			return nil, errors.Wrap(err, "dialing proxy")
		}
		if err := connectViaHTTP(ctx, conn, target, p); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil

	case proxySocks4:
		dial := socks.Dial(socks4URI(p))
		return dial("tcp", target)

	case proxySocks5:
		var auth *proxy.Auth
		if p.user != "" || p.password != "" {
			auth = &proxy.Auth{User: p.user, Password: p.password}
		}
		d, err := proxy.SOCKS5("tcp", p.addr, auth, proxy.Direct)
		if err != nil {
			return nil, errors.Wrap(err, "configuring socks5 dialer")
		}
		if cd, ok := d.(proxy.ContextDialer); ok {
			return cd.DialContext(ctx, "tcp", target)
		}
		return d.Dial("tcp", target)
	}

	return nil, errors.Errorf("unknown proxy kind: %d", p.kind)
}

// connectViaHTTP issues the CONNECT handshake on an established proxy
// connection. Exactly one response is consumed, so on success the
// stream is positioned at the first tunneled byte.
func connectViaHTTP(ctx context.Context, conn net.Conn, target string, p Proxy) error {
	// Unblock the handshake reads if the context goes away.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	head := "CONNECT " + target + " HTTP/1.1\r\nHost: " + target + "\r\n"
	if p.user != "" || p.password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(p.user + ":" + p.password))
		head += "Proxy-Authorization: basic " + credentials + "\r\n"
	}
	head += "\r\n"

	if err := lineio.WriteFull(conn, []byte(head)); err != nil {
		return errors.Wrap(err, "writing connect request")
	}

	res, err := httpmsg.ReadResponse(conn)
	if err != nil {
		return errors.Wrap(err, "reading connect response")
	}
	if !strings.HasPrefix(res.Status, "2") {
		return errors.Errorf("proxy refused tunnel: %s", res.Status)
	}

	return nil
}

func socks4URI(p Proxy) string {
	uri := "socks4://"
	if p.user != "" {
		uri += p.user + "@"
	}
	return uri + p.addr
}
