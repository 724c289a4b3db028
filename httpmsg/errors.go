package httpmsg

import "github.com/pkg/errors"

var (
	ErrInvalidRequestLine   = errors.New("malformed request line")
	ErrInvalidStatus        = errors.New("malformed status line")
	ErrInvalidHeaders       = errors.New("malformed headers")
	ErrInvalidContentLength = errors.New("content-length is not numeric")
	ErrInvalidContent       = errors.New("body shorter than declared or malformed")
	ErrWriteHead            = errors.New("writing head failed")
	ErrWriteBody            = errors.New("writing body failed")
)
