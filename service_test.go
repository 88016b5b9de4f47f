// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/internal/uuid"
	"github.com/absmach/certdeploy/mocks"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const reportID = "5b8d2b4e-1e6f-4e0a-9a0b-2f6f1d3b7c11"

func newService() (certdeploy.Service, *mocks.Destination, *mocks.Repository) {
	dest := new(mocks.Destination)
	repo := new(mocks.Repository)
	return certdeploy.NewService(dest, repo, uuid.NewMock(reportID), 2), dest, repo
}

func TestReconcile(t *testing.T) {
	svc, dest, repo := newService()

	uploaded := certdeploy.Report{CommonName: commonName, Action: certdeploy.ActionUploaded}
	failed := certdeploy.Report{CommonName: commonName, Action: certdeploy.ActionFailed}
	invalid := logicalCert(newFP)
	invalid.PrivateKeyPEM = ""

	cases := []struct {
		desc     string
		lc       certdeploy.LogicalCertificate
		destRep  certdeploy.Report
		destErr  error
		saveErr  error
		saved    bool
		id       string
		warnings bool
		expected certdeploy.Action
		err      error
	}{
		{
			desc:     "reconcile successfully",
			lc:       logicalCert(newFP),
			destRep:  uploaded,
			saved:    true,
			id:       reportID,
			expected: certdeploy.ActionUploaded,
		},
		{
			desc:     "reconcile with failed upload",
			lc:       logicalCert(newFP),
			destRep:  failed,
			destErr:  errors.Wrap(certdeploy.ErrUploadFailed, errInjected),
			saved:    true,
			id:       reportID,
			expected: certdeploy.ActionFailed,
			err:      certdeploy.ErrUploadFailed,
		},
		{
			desc:     "reconcile with failed report save keeps the deployed report",
			lc:       logicalCert(newFP),
			destRep:  uploaded,
			saveErr:  errInjected,
			saved:    true,
			warnings: true,
			expected: certdeploy.ActionUploaded,
		},
		{
			desc:     "reconcile with failed upload and failed report save",
			lc:       logicalCert(newFP),
			destRep:  failed,
			destErr:  errors.Wrap(certdeploy.ErrUploadFailed, errInjected),
			saveErr:  errInjected,
			saved:    true,
			expected: certdeploy.ActionFailed,
			err:      certdeploy.ErrUploadFailed,
		},
		{
			desc: "reconcile malformed certificate",
			lc:   invalid,
			err:  svcerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			destCall := dest.On("Reconcile", mock.Anything, tc.lc).Return(tc.destRep, tc.destErr)
			repoCall := repo.On("Save", mock.Anything, mock.MatchedBy(func(r certdeploy.Report) bool {
				return r.ID == reportID
			})).Return(tc.saveErr)

			rep, err := svc.Reconcile(context.Background(), tc.lc)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, rep.Action)
			assert.Equal(t, tc.id, rep.ID)
			assert.Equal(t, tc.warnings, rep.HasWarnings())
			if tc.saveErr != nil {
				require.NotEmpty(t, rep.Errors)
				assert.Equal(t, certdeploy.StagePersist, rep.Errors[len(rep.Errors)-1].Stage)
			}
			if tc.saved {
				repo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
			} else {
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}

			destCall.Unset()
			repoCall.Unset()
			repo.Calls = nil
		})
	}
}

// blockingDestination records how many runs overlap per common name.
type blockingDestination struct {
	mu      sync.Mutex
	active  map[string]int
	overlap atomic.Bool
	total   atomic.Int32
	maxRuns atomic.Int32
	running atomic.Int32
}

func (d *blockingDestination) Reconcile(ctx context.Context, lc certdeploy.LogicalCertificate) (certdeploy.Report, error) {
	d.mu.Lock()
	d.active[lc.CommonName]++
	if d.active[lc.CommonName] > 1 {
		d.overlap.Store(true)
	}
	d.mu.Unlock()

	n := d.running.Add(1)
	for {
		m := d.maxRuns.Load()
		if n <= m || d.maxRuns.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	d.running.Add(-1)
	d.total.Add(1)

	d.mu.Lock()
	d.active[lc.CommonName]--
	d.mu.Unlock()
	return certdeploy.Report{CommonName: lc.CommonName, Action: certdeploy.ActionUpToDate}, nil
}

func TestReconcileSerializesSameName(t *testing.T) {
	dest := &blockingDestination{active: make(map[string]int)}
	repo := new(mocks.Repository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc := certdeploy.NewService(dest, repo, uuid.New(), 4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reconcile(context.Background(), logicalCert(newFP))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, dest.overlap.Load(), "runs for the same common name overlapped")
	assert.Equal(t, int32(8), dest.total.Load())
}

func TestReconcileBatch(t *testing.T) {
	lcs := make([]certdeploy.LogicalCertificate, 6)
	for i := range lcs {
		lcs[i] = logicalCert(newFP)
		lcs[i].CommonName = fmt.Sprintf("host%d.example.com", i)
	}
	dup := []certdeploy.LogicalCertificate{logicalCert(newFP), logicalCert(oldFP)}

	cases := []struct {
		desc string
		lcs  []certdeploy.LogicalCertificate
		err  error
	}{
		{
			desc: "reconcile batch successfully",
			lcs:  lcs,
		},
		{
			desc: "reconcile batch with duplicate common name",
			lcs:  dup,
			err:  certdeploy.ErrDuplicateCommonName,
		},
		{
			desc: "reconcile batch with malformed certificate",
			lcs:  []certdeploy.LogicalCertificate{{CommonName: commonName}},
			err:  svcerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			dest := &blockingDestination{active: make(map[string]int)}
			repo := new(mocks.Repository)
			repo.On("Save", mock.Anything, mock.Anything).Return(nil)
			svc := certdeploy.NewService(dest, repo, uuid.New(), 2)

			reps, err := svc.ReconcileBatch(context.Background(), tc.lcs)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
				assert.Zero(t, dest.total.Load())
				return
			}
			require.NoError(t, err)
			require.Len(t, reps, len(tc.lcs))
			for i, rep := range reps {
				assert.Equal(t, tc.lcs[i].CommonName, rep.CommonName)
				assert.NotEmpty(t, rep.ID)
			}
			assert.LessOrEqual(t, dest.maxRuns.Load(), int32(2))
		})
	}
}

func TestReconcileBatchRecordsFailures(t *testing.T) {
	svc, dest, repo := newService()
	ok := logicalCert(newFP)
	bad := logicalCert(newFP)
	bad.CommonName = "broken.example.com"

	dest.On("Reconcile", mock.Anything, ok).Return(certdeploy.Report{CommonName: ok.CommonName, Action: certdeploy.ActionUploaded}, nil)
	dest.On("Reconcile", mock.Anything, bad).Return(certdeploy.Report{}, errors.Wrap(certdeploy.ErrLookupFailed, errInjected))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	reps, err := svc.ReconcileBatch(context.Background(), []certdeploy.LogicalCertificate{ok, bad})
	require.NoError(t, err)
	require.Len(t, reps, 2)
	assert.Equal(t, certdeploy.ActionUploaded, reps[0].Action)
	assert.Equal(t, certdeploy.ActionFailed, reps[1].Action)
	assert.Equal(t, bad.CommonName, reps[1].CommonName)
	require.NotEmpty(t, reps[1].Errors)
}

func TestViewReport(t *testing.T) {
	svc, _, repo := newService()

	cases := []struct {
		desc    string
		id      string
		rep     certdeploy.Report
		repoErr error
		err     error
	}{
		{
			desc: "view report successfully",
			id:   reportID,
			rep:  certdeploy.Report{ID: reportID, CommonName: commonName},
		},
		{
			desc:    "view missing report",
			id:      "missing",
			repoErr: svcerr.ErrNotFound,
			err:     svcerr.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			repoCall := repo.On("Retrieve", mock.Anything, tc.id).Return(tc.rep, tc.repoErr)
			rep, err := svc.ViewReport(context.Background(), tc.id)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.rep, rep)
			}
			repoCall.Unset()
		})
	}
}

func TestListReports(t *testing.T) {
	svc, _, repo := newService()

	pm := certdeploy.PageMetadata{Offset: 0, Limit: 10, CommonName: commonName}
	page := certdeploy.ReportPage{
		PageMetadata: certdeploy.PageMetadata{Total: 1, Limit: 10, CommonName: commonName},
		Reports:      []certdeploy.Report{{ID: reportID, CommonName: commonName}},
	}

	cases := []struct {
		desc    string
		page    certdeploy.ReportPage
		repoErr error
		err     error
	}{
		{
			desc: "list reports successfully",
			page: page,
		},
		{
			desc:    "list reports with repository failure",
			repoErr: errInjected,
			err:     svcerr.ErrViewEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			repoCall := repo.On("List", mock.Anything, pm).Return(tc.page, tc.repoErr)
			got, err := svc.ListReports(context.Background(), pm)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.page, got)
			}
			repoCall.Unset()
		})
	}
}
