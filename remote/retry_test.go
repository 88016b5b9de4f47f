// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package remote_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/mocks"
	"github.com/absmach/certdeploy/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errUnsent   = &remote.TransportError{Op: "op", Cause: errors.New("connection refused")}
	errSent     = &remote.TransportError{Op: "op", Cause: errors.New("connection reset"), Sent: true}
	errUnavail  = &remote.APIError{Op: "op", StatusCode: http.StatusServiceUnavailable}
	errConflict = &remote.APIError{Op: "op", StatusCode: http.StatusConflict}
)

func TestRetryReads(t *testing.T) {
	cases := []struct {
		desc  string
		err   error
		calls int
	}{
		{desc: "transport failure is retried", err: errSent, calls: 2},
		{desc: "unavailable is retried", err: errUnavail, calls: 2},
		{desc: "client error is not retried", err: errConflict, calls: 1},
		{desc: "unknown error is not retried", err: errors.New("decode"), calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			inner := new(mocks.Client)
			keys := []certdeploy.PrivateKey{{ID: "k1", Name: "example.com"}}
			inner.On("ListPrivateKeys", mock.Anything).Return(nil, tc.err).Once()
			inner.On("ListPrivateKeys", mock.Anything).Return(keys, nil).Once()
			c := remote.NewRetryingClient(inner, time.Second)

			got, err := c.ListPrivateKeys(context.Background())
			inner.AssertNumberOfCalls(t, "ListPrivateKeys", tc.calls)
			if tc.calls == 1 {
				assert.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, keys, got)
		})
	}
}

func TestRetryWrites(t *testing.T) {
	cases := []struct {
		desc  string
		err   error
		calls int
	}{
		{desc: "unsent request is retried", err: errUnsent, calls: 2},
		{desc: "sent request is not retried", err: errSent, calls: 1},
		{desc: "unavailable is not retried", err: errUnavail, calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			inner := new(mocks.Client)
			inner.On("CreateCertificate", mock.Anything, "example.com", "bundle").Return("", tc.err).Once()
			inner.On("CreateCertificate", mock.Anything, "example.com", "bundle").Return("c1", nil).Once()
			inner.On("UpdateActivation", mock.Anything, "a1", "c1").Return(tc.err).Once()
			inner.On("UpdateActivation", mock.Anything, "a1", "c1").Return(nil).Once()
			c := remote.NewRetryingClient(inner, time.Second)

			id, err := c.CreateCertificate(context.Background(), "example.com", "bundle")
			uerr := c.UpdateActivation(context.Background(), "a1", "c1")
			inner.AssertNumberOfCalls(t, "CreateCertificate", tc.calls)
			inner.AssertNumberOfCalls(t, "UpdateActivation", tc.calls)
			if tc.calls == 1 {
				assert.Equal(t, tc.err, err)
				assert.Equal(t, tc.err, uerr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, uerr)
			assert.Equal(t, "c1", id)
		})
	}
}

func TestRetryDisabled(t *testing.T) {
	inner := new(mocks.Client)
	inner.On("ListActivations", mock.Anything).Return(nil, errUnavail).Once()
	c := remote.NewRetryingClient(inner, 0)

	_, err := c.ListActivations(context.Background())
	assert.Equal(t, errUnavail, err)
	inner.AssertNumberOfCalls(t, "ListActivations", 1)
}

func TestRetryGivesUp(t *testing.T) {
	inner := new(mocks.Client)
	inner.On("GetCertificate", mock.Anything, "c1").Return(certdeploy.Certificate{}, errUnavail)
	c := remote.NewRetryingClient(inner, 300*time.Millisecond)

	_, err := c.GetCertificate(context.Background(), "c1")
	var apiErr *remote.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Greater(t, len(inner.Calls), 1)
}
