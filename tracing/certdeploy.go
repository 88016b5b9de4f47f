// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"

	"github.com/absmach/certdeploy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ certdeploy.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    certdeploy.Service
}

// New returns a new deployment service with tracing capabilities.
func New(svc certdeploy.Service, tracer trace.Tracer) certdeploy.Service {
	return &tracingMiddleware{tracer, svc}
}

func (tm *tracingMiddleware) Reconcile(ctx context.Context, lc certdeploy.LogicalCertificate) (certdeploy.Report, error) {
	ctx, span := tm.tracer.Start(ctx, "reconcile", trace.WithAttributes(
		attribute.String("common_name", lc.CommonName),
	))
	defer span.End()

	rep, err := tm.svc.Reconcile(ctx, lc)
	span.SetAttributes(
		attribute.String("action", string(rep.Action)),
		attribute.Int("mutations", rep.Mutations()),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return rep, err
}

func (tm *tracingMiddleware) ReconcileBatch(ctx context.Context, lcs []certdeploy.LogicalCertificate) ([]certdeploy.Report, error) {
	ctx, span := tm.tracer.Start(ctx, "reconcile_batch", trace.WithAttributes(
		attribute.Int("certificates", len(lcs)),
	))
	defer span.End()
	return tm.svc.ReconcileBatch(ctx, lcs)
}

func (tm *tracingMiddleware) ViewReport(ctx context.Context, id string) (certdeploy.Report, error) {
	ctx, span := tm.tracer.Start(ctx, "view_report")
	defer span.End()
	return tm.svc.ViewReport(ctx, id)
}

func (tm *tracingMiddleware) ListReports(ctx context.Context, pm certdeploy.PageMetadata) (certdeploy.ReportPage, error) {
	ctx, span := tm.tracer.Start(ctx, "list_reports")
	defer span.End()
	return tm.svc.ListReports(ctx, pm)
}
