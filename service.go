// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy

import (
	"context"

	"github.com/absmach/certdeploy/internal/uuid"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	"golang.org/x/sync/errgroup"
)

const defaultBatchLimit = 4

type service struct {
	dest       Destination
	repo       Repository
	idp        uuid.IDProvider
	locks      *keyLock
	batchLimit int
}

var _ Service = (*service)(nil)

// NewService returns a service deploying onto dest and recording reports in repo.
// batchLimit bounds concurrent runs of a batch.
func NewService(dest Destination, repo Repository, idp uuid.IDProvider, batchLimit int) Service {
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}
	return &service{
		dest:       dest,
		repo:       repo,
		idp:        idp,
		locks:      newKeyLock(),
		batchLimit: batchLimit,
	}
}

func (s *service) Reconcile(ctx context.Context, lc LogicalCertificate) (Report, error) {
	if err := lc.Validate(); err != nil {
		return Report{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	unlock, err := s.locks.lock(ctx, lc.CommonName)
	if err != nil {
		return Report{}, errors.Wrap(ErrCanceled, err)
	}
	defer unlock()

	id, err := s.idp.ID()
	if err != nil {
		return Report{}, err
	}

	rep, rerr := s.dest.Reconcile(ctx, lc)
	rep.ID = id

	// The remote side already changed, so the report is stored even when the
	// caller has gone away. A report that could not be stored is still
	// returned, without an id and with the storage failure as a warning.
	if err := s.repo.Save(context.WithoutCancel(ctx), rep); err != nil {
		rep.ID = ""
		rep.fail(StagePersist, "", errors.Wrap(svcerr.ErrCreateEntity, err))
		if rerr != nil {
			return rep, errors.Wrap(rerr, err)
		}
		return rep, nil
	}

	return rep, rerr
}

func (s *service) ReconcileBatch(ctx context.Context, lcs []LogicalCertificate) ([]Report, error) {
	seen := make(map[string]struct{}, len(lcs))
	for _, lc := range lcs {
		if err := lc.Validate(); err != nil {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
		}
		if _, ok := seen[lc.CommonName]; ok {
			return nil, errors.Wrap(svcerr.ErrMalformedEntity, ErrDuplicateCommonName)
		}
		seen[lc.CommonName] = struct{}{}
	}

	reports := make([]Report, len(lcs))
	var g errgroup.Group
	g.SetLimit(s.batchLimit)
	for i, lc := range lcs {
		g.Go(func() error {
			rep, err := s.Reconcile(ctx, lc)
			if rep.CommonName == "" {
				rep.CommonName = lc.CommonName
				rep.Action = ActionFailed
			}
			if err != nil && len(rep.Errors) == 0 {
				rep.Errors = append(rep.Errors, ReportError{Message: err.Error()})
			}
			reports[i] = rep
			return nil
		})
	}
	_ = g.Wait()

	return reports, nil
}

func (s *service) ViewReport(ctx context.Context, id string) (Report, error) {
	rep, err := s.repo.Retrieve(ctx, id)
	if err != nil {
		return Report{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	return rep, nil
}

func (s *service) ListReports(ctx context.Context, pm PageMetadata) (ReportPage, error) {
	page, err := s.repo.List(ctx, pm)
	if err != nil {
		return ReportPage{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	return page, nil
}
