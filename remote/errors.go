// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"fmt"
	"net/http"

	"github.com/absmach/certdeploy/pkg/errors"
)

var errMalformedResponse = errors.New("malformed remote response")

// APIError is a non-2xx answer of the remote service. The body is kept
// verbatim; it is never interpreted as success.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: remote responded %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Retryable reports whether the remote service may accept the same request later.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// TransportError is a failure to complete the HTTP exchange.
type TransportError struct {
	Op    string
	Cause error
	// Sent is true once the whole request was written to the connection,
	// after which the remote side may have applied it.
	Sent bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
