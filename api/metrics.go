// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/go-kit/kit/metrics"
)

var _ certdeploy.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     certdeploy.Service
}

// MetricsMiddleware instruments core service by tracking request count and latency.
func MetricsMiddleware(svc certdeploy.Service, counter metrics.Counter, latency metrics.Histogram) certdeploy.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Reconcile(ctx context.Context, lc certdeploy.LogicalCertificate) (certdeploy.Report, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "reconcile").Add(1)
		mm.latency.With("method", "reconcile").Observe(time.Since(begin).Seconds())
	}(time.Now())
	rep, err := mm.svc.Reconcile(ctx, lc)
	if rep.Action != "" {
		mm.counter.With("method", "reconcile_"+string(rep.Action)).Add(1)
	}
	return rep, err
}

func (mm *metricsMiddleware) ReconcileBatch(ctx context.Context, lcs []certdeploy.LogicalCertificate) ([]certdeploy.Report, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "reconcile_batch").Add(1)
		mm.latency.With("method", "reconcile_batch").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ReconcileBatch(ctx, lcs)
}

func (mm *metricsMiddleware) ViewReport(ctx context.Context, id string) (certdeploy.Report, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_report").Add(1)
		mm.latency.With("method", "view_report").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ViewReport(ctx, id)
}

func (mm *metricsMiddleware) ListReports(ctx context.Context, pm certdeploy.PageMetadata) (certdeploy.ReportPage, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_reports").Add(1)
		mm.latency.With("method", "list_reports").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ListReports(ctx, pm)
}
