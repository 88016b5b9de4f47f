// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	"github.com/go-kit/kit/endpoint"
)

func deployEndpoint(svc certdeploy.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(deployReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		lc, err := req.logical()
		if err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		rep, err := svc.Reconcile(ctx, lc)
		if err != nil {
			// A failed run is still returned in full.
			if rep.Action == certdeploy.ActionFailed {
				return newDeployRes(rep, err), nil
			}
			return nil, err
		}

		return newDeployRes(rep, nil), nil
	}
}

func deployBatchEndpoint(svc certdeploy.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(deployBatchReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		lcs, err := req.logical()
		if err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		reps, err := svc.ReconcileBatch(ctx, lcs)
		if err != nil {
			return nil, err
		}

		res := deployBatchRes{Reports: make([]deployRes, 0, len(reps))}
		for _, rep := range reps {
			res.Reports = append(res.Reports, newDeployRes(rep, nil))
		}
		return res, nil
	}
}

func viewReportEndpoint(svc certdeploy.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(viewReportReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		rep, err := svc.ViewReport(ctx, req.id)
		if err != nil {
			return nil, err
		}

		return viewReportRes{Report: rep}, nil
	}
}

func listReportsEndpoint(svc certdeploy.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(listReportsReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}

		page, err := svc.ListReports(ctx, req.pm)
		if err != nil {
			return nil, err
		}

		if page.Reports == nil {
			page.Reports = []certdeploy.Report{}
		}
		return listReportsRes{ReportPage: page}, nil
	}
}
