package server

import "time"

type Options struct {
	// Host is the listen address ("host:port"). Port 0 picks a free
	// port; the bound address is reported through OnStart and the
	// Running handle.
	Host string

	// Threads selects the concurrency strategy. 0 spawns one
	// goroutine per connection with no backpressure. 1 handles each
	// connection inline on the accept loop, strictly FIFO. N > 1
	// dispatches to a pool of N workers; while every worker is busy,
	// submission blocks the accept loop instead of dropping the
	// connection.
	Threads uint

	// Persistent keeps the receive-respond cycle looping on one
	// connection until the peer disconnects or errors. Off means one
	// request per connection.
	Persistent bool

	Timeout TimeoutOptions
}

type TimeoutOptions struct {
	// Read and Write bound each request receive and each response
	// send on a connection. Zero means unbounded.
	Read  time.Duration
	Write time.Duration
}
