package server

import (
	"io"
	"net"

	"github.com/pkg/errors"

	"ezhttp/httpmsg"
)

// handleConn runs the receive-respond cycle on one accepted socket.
// The socket is always closed on return. Codec and write failures go
// through the handler's error callback; a cleanly disconnected peer
// does not.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("peer", conn.RemoteAddr())

	for {
		if d := s.opts.Timeout.Read; d > 0 {
			if err := conn.SetReadDeadline(s.clock.Now().Add(d)); err != nil {
				s.handler.OnError(errors.Wrap(err, "setting read deadline"))
				return
			}
		}

		req, err := httpmsg.ReadRequest(conn, conn.RemoteAddr())
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.handler.OnError(errors.Wrap(err, "receiving request"))
			}
			return
		}

		logger.Debug("request received",
			"method", req.Method, "target", req.URL.RequestTarget())

		res := s.doRequest(req)
		if res == nil {
			return
		}

		if d := s.opts.Timeout.Write; d > 0 {
			if err := conn.SetWriteDeadline(s.clock.Now().Add(d)); err != nil {
				s.handler.OnError(errors.Wrap(err, "setting write deadline"))
				return
			}
		}

		if err := res.Send(conn); err != nil {
			s.handler.OnError(errors.Wrap(err, "sending response"))
			return
		}

		if !s.opts.Persistent {
			return
		}
	}
}

// doRequest guards the request callback so a panicking handler only
// costs its own connection.
func (s *Server) doRequest(req *httpmsg.Request) (res *httpmsg.Response) {
	defer func() {
		if e := recover(); e != nil {
			s.handler.OnError(errors.Errorf("handler panicked: %v", e))
			res = nil
		}
	}()

	return s.handler.OnRequest(req)
}
