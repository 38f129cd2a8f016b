package rpcerr

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError is a failed exchange with a remote service. Status is
// zero when no response was received at all.
type TransportError struct {
	Status int
	// Code is the registered error code reported by the remote side, if any.
	Code uint64
	Err  error
}

func (e *TransportError) Error() string {
	msg := "transport failure"
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Code != 0 {
		msg = fmt.Sprintf("%s: %v", msg, Err(e.Code))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransportError) Unwrap() []error {
	errs := []error{ErrTransportFailure}
	if e.Code != 0 {
		errs = append(errs, Err(e.Code))
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Retryable reports whether the same request may succeed later: no
// response, a server error or throttling.
func (e *TransportError) Retryable() bool {
	return e.Status == 0 || e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// IsRetryable reports whether err is a retryable TransportError.
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	return false
}
