package client

import (
	"time"

	"ezhttp/httpmsg"
)

type Options struct {
	// Proxy routes the connection through an intermediary.
	// The zero value connects directly.
	Proxy Proxy

	// Headers are merged into every outgoing request as fallbacks.
	// A header already set on the request is never overridden.
	Headers httpmsg.Headers

	// InsecureSkipVerify disables certificate verification on https
	// connections. Meant for development and interception setups.
	InsecureSkipVerify bool

	Timeout TimeoutOptions
}

type TimeoutOptions struct {
	// Connect bounds the whole tunnel negotiation, proxy handshake
	// included. Zero means unbounded.
	Connect time.Duration

	// Read and Write bound the request-response exchange on the
	// established connection. Zero means unbounded.
	Read  time.Duration
	Write time.Duration
}
