// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/certdeploy"
)

var _ certdeploy.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    certdeploy.Service
}

// LoggingMiddleware adds logging facilities to the core service.
func LoggingMiddleware(svc certdeploy.Service, logger *slog.Logger) certdeploy.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) Reconcile(ctx context.Context, lc certdeploy.LogicalCertificate) (rep certdeploy.Report, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method reconcile for %s ended with %s and took %s to complete", lc.CommonName, rep.Action, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		if rep.HasWarnings() {
			lm.logger.Warn(message, slog.Int("errors", len(rep.Errors)), slog.Any("failed_activations", rep.FailedActivations))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.Reconcile(ctx, lc)
}

func (lm *loggingMiddleware) ReconcileBatch(ctx context.Context, lcs []certdeploy.LogicalCertificate) (reps []certdeploy.Report, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method reconcile_batch for %d certificates took %s to complete", len(lcs), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ReconcileBatch(ctx, lcs)
}

func (lm *loggingMiddleware) ViewReport(ctx context.Context, id string) (rep certdeploy.Report, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_report for report %s took %s to complete", id, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ViewReport(ctx, id)
}

func (lm *loggingMiddleware) ListReports(ctx context.Context, pm certdeploy.PageMetadata) (page certdeploy.ReportPage, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method list_reports took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ListReports(ctx, pm)
}
