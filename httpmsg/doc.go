// Package httpmsg implements HTTP/1.1 message framing over raw byte
// streams: an ordered case-insensitive header store, a byte-buffer body
// with content-length, chunked and multipart codecs, and the
// request/response receive and send paths.
//
// A message without Content-Length or chunked Transfer-Encoding is read
// with an empty body, on both sides. Reading to EOF instead would hang
// the proxy CONNECT exchange, which reuses ReadResponse on a stream
// that stays open, and is unnecessary for messages this module itself
// produced, since the client and server always set Content-Length.
//
// The codec never reads past the message it is parsing, so the same
// stream can carry a TLS handshake or another message right after.
package httpmsg
