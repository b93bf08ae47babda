package adaptor

import (
	"errors"
	"net/http"
	"syscall"
)

func isClientGone(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, http.ErrHandlerTimeout) ||
		errors.Is(err, http.ErrAbortHandler)
}
