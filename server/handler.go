package server

import "ezhttp/httpmsg"

// Handler is the callback surface the server invokes into user code.
// OnRequest returning nil drops the connection without writing
// anything, which is the way to refuse a request unanswered.
type Handler interface {
	OnStart(host string)
	OnClose()
	OnRequest(req *httpmsg.Request) *httpmsg.Response
	OnError(err error)
}

// BaseHandler provides no-op lifecycle and error callbacks so a
// handler only has to implement OnRequest.
type BaseHandler struct{}

func (BaseHandler) OnStart(string) {}
func (BaseHandler) OnClose()       {}
func (BaseHandler) OnError(error)  {}

// HandlerFunc adapts a bare request callback to Handler.
type HandlerFunc func(req *httpmsg.Request) *httpmsg.Response

func (f HandlerFunc) OnStart(string) {}
func (f HandlerFunc) OnClose()       {}
func (f HandlerFunc) OnError(error)  {}

func (f HandlerFunc) OnRequest(req *httpmsg.Request) *httpmsg.Response {
	return f(req)
}
