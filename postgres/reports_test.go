// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/internal/uuid"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	cpostgres "github.com/absmach/certdeploy/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReport(t *testing.T, cn string, started time.Time) certdeploy.Report {
	id, err := uuid.New().ID()
	require.NoError(t, err)
	return certdeploy.Report{
		ID:          id,
		CommonName:  cn,
		Fingerprint: "bb22",
		Action:      certdeploy.ActionUploaded,
		Created:     certdeploy.ResourceIDs{PrivateKeyID: "key-2", CertificateID: "cert-2"},
		Deleted:     certdeploy.ResourceIDs{PrivateKeyID: "key-1", CertificateID: "cert-1"},
		Migrated:    []string{"act-1"},
		Steps: []certdeploy.Step{
			{Stage: certdeploy.StageUpload, Op: certdeploy.OpCreated, Kind: certdeploy.KindPrivateKey, ID: "key-2"},
		},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
}

func truncate(t *testing.T) {
	_, err := db.Exec("DELETE FROM reports")
	require.NoError(t, err)
}

func TestSave(t *testing.T) {
	t.Cleanup(func() { truncate(t) })
	repo := cpostgres.NewRepository(database)

	rep := newReport(t, "example.com", time.Now())

	testCases := []struct {
		desc   string
		report certdeploy.Report
		err    error
	}{
		{
			desc:   "save new report",
			report: rep,
			err:    nil,
		},
		{
			desc:   "save report with existing id",
			report: rep,
			err:    svcerr.ErrConflict,
		},
		{
			desc:   "save report with oversized id",
			report: certdeploy.Report{ID: fmt.Sprintf("%064d", 1), CommonName: "example.com", Action: certdeploy.ActionFailed},
			err:    svcerr.ErrMalformedEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := repo.Save(context.Background(), tc.report)
			assert.True(t, errors.Contains(err, tc.err), "expected %v, got %v", tc.err, err)
		})
	}
}

func TestRetrieve(t *testing.T) {
	t.Cleanup(func() { truncate(t) })
	repo := cpostgres.NewRepository(database)

	rep := newReport(t, "example.com", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Save(context.Background(), rep))

	testCases := []struct {
		desc     string
		id       string
		expected certdeploy.Report
		err      error
	}{
		{
			desc:     "retrieve existing report",
			id:       rep.ID,
			expected: rep,
		},
		{
			desc: "retrieve missing report",
			id:   "bfead30d-5a1d-40f3-be21-fd8ffad49db0",
			err:  svcerr.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := repo.Retrieve(context.Background(), tc.id)
			assert.True(t, errors.Contains(err, tc.err), "expected %v, got %v", tc.err, err)
			if tc.err != nil {
				return
			}
			assert.Equal(t, tc.expected.ID, got.ID)
			assert.Equal(t, tc.expected.Action, got.Action)
			assert.Equal(t, tc.expected.Created, got.Created)
			assert.Equal(t, tc.expected.Deleted, got.Deleted)
			assert.Equal(t, tc.expected.Migrated, got.Migrated)
			assert.Equal(t, tc.expected.Steps, got.Steps)
			assert.True(t, tc.expected.StartedAt.Equal(got.StartedAt))
		})
	}
}

func TestList(t *testing.T) {
	t.Cleanup(func() { truncate(t) })
	repo := cpostgres.NewRepository(database)

	base := time.Now().UTC().Truncate(time.Microsecond)
	var example []certdeploy.Report
	for i := 0; i < 5; i++ {
		rep := newReport(t, "example.com", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Save(context.Background(), rep))
		example = append(example, rep)
	}
	other := newReport(t, "api.example.com", base)
	require.NoError(t, repo.Save(context.Background(), other))

	testCases := []struct {
		desc    string
		pm      certdeploy.PageMetadata
		total   uint64
		size    int
		firstID string
	}{
		{
			desc:    "list all reports",
			pm:      certdeploy.PageMetadata{Limit: 10},
			total:   6,
			size:    6,
			firstID: example[4].ID,
		},
		{
			desc:    "list by common name",
			pm:      certdeploy.PageMetadata{Limit: 10, CommonName: "api.example.com"},
			total:   1,
			size:    1,
			firstID: other.ID,
		},
		{
			desc:    "list with offset and limit",
			pm:      certdeploy.PageMetadata{Offset: 1, Limit: 2, CommonName: "example.com"},
			total:   5,
			size:    2,
			firstID: example[3].ID,
		},
		{
			desc:  "list unknown common name",
			pm:    certdeploy.PageMetadata{Limit: 10, CommonName: "unknown.example.com"},
			total: 0,
			size:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			page, err := repo.List(context.Background(), tc.pm)
			require.NoError(t, err)
			assert.Equal(t, tc.total, page.Total)
			assert.Len(t, page.Reports, tc.size)
			if tc.firstID != "" {
				assert.Equal(t, tc.firstID, page.Reports[0].ID)
			}
		})
	}
}
