// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/apiutil"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	kithttp "github.com/go-kit/kit/transport/http"
)

const (
	// ContentType represents JSON content type.
	ContentType = "application/json"

	// StatusClientClosedRequest is returned when the caller gave up before the run started.
	StatusClientClosedRequest = 499
)

// Response contains HTTP response specific methods.
type Response interface {
	// Code returns HTTP response code.
	Code() int

	// Headers returns map of HTTP headers with their values.
	Headers() map[string]string

	// Empty indicates if HTTP response has content.
	Empty() bool
}

// EncodeResponse encodes successful response.
func EncodeResponse(_ context.Context, w http.ResponseWriter, response any) error {
	if ar, ok := response.(Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

// EncodeError encodes an error response.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	switch {
	case errors.Contains(err, apiutil.ErrUnsupportedContentType):
		w.WriteHeader(http.StatusUnsupportedMediaType)

	case errors.Contains(err, svcerr.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)

	case errors.Contains(err, svcerr.ErrConflict):
		w.WriteHeader(http.StatusConflict)

	case errors.Contains(err, svcerr.ErrMalformedEntity),
		errors.Contains(err, apiutil.ErrMissingID),
		errors.Contains(err, apiutil.ErrMissingCertificate),
		errors.Contains(err, apiutil.ErrMissingPrivateKey),
		errors.Contains(err, apiutil.ErrEmptyList),
		errors.Contains(err, apiutil.ErrLimitSize),
		errors.Contains(err, apiutil.ErrInvalidQueryParams),
		errors.Contains(err, apiutil.ErrValidation),
		errors.Contains(err, svcerr.ErrViewEntity):
		w.WriteHeader(http.StatusBadRequest)

	case errors.Contains(err, certdeploy.ErrUploadFailed),
		errors.Contains(err, certdeploy.ErrLookupFailed),
		errors.Contains(err, svcerr.ErrCreateEntity):
		w.WriteHeader(http.StatusUnprocessableEntity)

	case errors.Contains(err, certdeploy.ErrCanceled):
		w.WriteHeader(StatusClientClosedRequest)

	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	if errorVal, ok := err.(errors.Error); ok {
		if err := json.NewEncoder(w).Encode(errorVal); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(map[string]string{"message": err.Error()}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// LoggingErrorEncoder logs request failures before encoding them.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if errors.Contains(err, apiutil.ErrValidation) || errors.Contains(err, svcerr.ErrMalformedEntity) {
			logger.Error(err.Error())
		}
		enc(ctx, err, w)
	}
}
