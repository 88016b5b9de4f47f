// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/internal/api"
	"github.com/absmach/certdeploy/pkg/apiutil"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	"github.com/absmach/supermq"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	svcName       = "certdeploy"
	offsetKey     = "offset"
	limitKey      = "limit"
	commonNameKey = "common_name"
	defOffset     = 0
	defLimit      = 10
)

// MakeHandler returns a HTTP handler for API endpoints.
func MakeHandler(svc certdeploy.Service, logger *slog.Logger, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(api.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	r := chi.NewRouter()

	r.Route("/deployments", func(r chi.Router) {
		r.Post("/", otelhttp.NewHandler(kithttp.NewServer(
			deployEndpoint(svc),
			decodeDeploy,
			api.EncodeResponse,
			opts...,
		), "deploy").ServeHTTP)

		r.Post("/batch", otelhttp.NewHandler(kithttp.NewServer(
			deployBatchEndpoint(svc),
			decodeDeployBatch,
			api.EncodeResponse,
			opts...,
		), "deploy_batch").ServeHTTP)

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listReportsEndpoint(svc),
			decodeListReports,
			api.EncodeResponse,
			opts...,
		), "list_reports").ServeHTTP)

		r.Get("/{id}", otelhttp.NewHandler(kithttp.NewServer(
			viewReportEndpoint(svc),
			decodeViewReport,
			api.EncodeResponse,
			opts...,
		), "view_report").ServeHTTP)
	})

	r.Get("/health", supermq.Health(svcName, instanceID))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func decodeDeploy(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, apiutil.ErrUnsupportedContentType
	}

	var req deployReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	return req, nil
}

func decodeDeployBatch(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, apiutil.ErrUnsupportedContentType
	}

	var req deployBatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	return req, nil
}

func decodeViewReport(_ context.Context, r *http.Request) (any, error) {
	return viewReportReq{id: chi.URLParam(r, "id")}, nil
}

func decodeListReports(_ context.Context, r *http.Request) (any, error) {
	offset, err := apiutil.ReadUintQuery(r, offsetKey, defOffset)
	if err != nil {
		return nil, err
	}

	limit, err := apiutil.ReadUintQuery(r, limitKey, defLimit)
	if err != nil {
		return nil, err
	}

	cn, err := apiutil.ReadStringQuery(r, commonNameKey, "")
	if err != nil {
		return nil, err
	}

	return listReportsReq{
		pm: certdeploy.PageMetadata{
			Offset:     offset,
			Limit:      limit,
			CommonName: cn,
		},
	}, nil
}
