package client

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/pkg/errors"
)

var ErrTLS = errors.New("tls session failed")

// wrapTLS layers a TLS session over an established, possibly proxied
// transport. The session is bound to host for SNI and certificate name
// checks. Handshake failures surface as ErrTLS.
func (c *Client) wrapTLS(ctx context.Context, conn net.Conn, host string) (net.Conn, error) {
	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: c.opts.InsecureSkipVerify,
	})

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, errors.Wrapf(ErrTLS, "%v", err)
	}

	return tlsConn, nil
}
