// Package server accepts HTTP/1.1 connections and runs them through a
// Handler under one of three concurrency strategies.
package server

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type Server struct {
	handler Handler

	logger *slog.Logger
	clock  clock.Clock
	opts   Options
}

func New(handler Handler, logger *slog.Logger, clock clock.Clock, opts Options) *Server {
	return &Server{
		handler: handler,
		logger:  logger,
		clock:   clock,
		opts:    opts,
	}
}

// Running is the handle to a started server.
type Running struct {
	addr net.Addr

	cancel context.CancelFunc
	done   chan struct{}
}

// Addr is the bound listen address.
func (r *Running) Addr() net.Addr { return r.addr }

// Close stops accepting and waits for the accept loop and every
// dispatched connection handler to finish. The bound address is
// reusable once Close returns.
func (r *Running) Close() {
	r.cancel()
	<-r.done
}

// Start binds the listener and serves in the background until the
// returned handle is closed.
func (s *Server) Start() (*Running, error) {
	lis, err := net.Listen("tcp", s.opts.Host)
	if err != nil {
		return nil, errors.Wrap(err, "binding listener")
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.serve(ctx, lis)
	}()

	return &Running{addr: lis.Addr(), cancel: cancel, done: done}, nil
}

// Run binds the listener and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.opts.Host)
	if err != nil {
		return errors.Wrap(err, "binding listener")
	}

	s.serve(ctx, lis)
	return nil
}

func (s *Server) serve(ctx context.Context, lis net.Listener) {
	// Closing the listener is what unblocks Accept on cancellation.
	stop := context.AfterFunc(ctx, func() { lis.Close() })
	defer stop()
	defer lis.Close()

	s.handler.OnStart(lis.Addr().String())
	defer s.handler.OnClose()

	s.logger.Info("serving", "addr", lis.Addr(), "threads", s.opts.Threads)

	switch {
	case s.opts.Threads == 1:
		s.serveSync(ctx, lis)
	case s.opts.Threads > 1:
		s.servePool(ctx, lis)
	default:
		s.serveSpawn(ctx, lis)
	}
}

// accept returns the next connection, or false when the server should
// stop serving.
func (s *Server) accept(ctx context.Context, lis net.Listener) (net.Conn, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	conn, err := lis.Accept()
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Error("accepting connection", "error", err.Error())
		}
		return nil, false
	}

	return conn, true
}

// serveSpawn runs one goroutine per accepted connection.
func (s *Server) serveSpawn(ctx context.Context, lis net.Listener) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, ok := s.accept(ctx, lis)
		if !ok {
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(conn)
		}()
	}
}

// serveSync handles each connection inline before accepting the next.
func (s *Server) serveSync(ctx context.Context, lis net.Listener) {
	for {
		conn, ok := s.accept(ctx, lis)
		if !ok {
			return
		}
		s.handleConn(conn)
	}
}

// servePool dispatches connections to a fixed pool of workers over an
// unbuffered channel. A saturated pool blocks the accept loop.
func (s *Server) servePool(ctx context.Context, lis net.Listener) {
	conns := make(chan net.Conn)

	var wg sync.WaitGroup
	for i := uint(0); i < s.opts.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for conn := range conns {
				s.handleConn(conn)
			}
		}()
	}

	for {
		conn, ok := s.accept(ctx, lis)
		if !ok {
			break
		}

		select {
		case conns <- conn:
		case <-ctx.Done():
			conn.Close()
		}
	}

	close(conns)
	wg.Wait()
}
