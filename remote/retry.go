// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"errors"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/cenkalti/backoff/v4"
)

// retryingClient retries calls that cannot have been applied twice. Reads
// are retried on transport failures and 5xx answers; writes only when the
// request never fully left the process.
type retryingClient struct {
	certdeploy.Client
	maxElapsed time.Duration
}

// NewRetryingClient wraps client with exponential backoff bounded by maxElapsed.
// A non-positive maxElapsed disables retries.
func NewRetryingClient(client certdeploy.Client, maxElapsed time.Duration) certdeploy.Client {
	return &retryingClient{Client: client, maxElapsed: maxElapsed}
}

func (rc *retryingClient) ListPrivateKeys(ctx context.Context) ([]certdeploy.PrivateKey, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() ([]certdeploy.PrivateKey, error) {
		return rc.Client.ListPrivateKeys(ctx)
	})
}

func (rc *retryingClient) GetPrivateKey(ctx context.Context, id string) (certdeploy.PrivateKey, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() (certdeploy.PrivateKey, error) {
		return rc.Client.GetPrivateKey(ctx, id)
	})
}

func (rc *retryingClient) CreatePrivateKey(ctx context.Context, name, keyPEM string) (string, error) {
	return retry(ctx, rc.maxElapsed, writeRetryable, func() (string, error) {
		return rc.Client.CreatePrivateKey(ctx, name, keyPEM)
	})
}

func (rc *retryingClient) UpdatePrivateKey(ctx context.Context, id, name string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.UpdatePrivateKey(ctx, id, name)
	})
}

func (rc *retryingClient) DeletePrivateKey(ctx context.Context, id string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.DeletePrivateKey(ctx, id)
	})
}

func (rc *retryingClient) ListCertificates(ctx context.Context) ([]certdeploy.Certificate, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() ([]certdeploy.Certificate, error) {
		return rc.Client.ListCertificates(ctx)
	})
}

func (rc *retryingClient) GetCertificate(ctx context.Context, id string) (certdeploy.Certificate, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() (certdeploy.Certificate, error) {
		return rc.Client.GetCertificate(ctx, id)
	})
}

func (rc *retryingClient) CreateCertificate(ctx context.Context, name, bundle string) (string, error) {
	return retry(ctx, rc.maxElapsed, writeRetryable, func() (string, error) {
		return rc.Client.CreateCertificate(ctx, name, bundle)
	})
}

func (rc *retryingClient) UpdateCertificate(ctx context.Context, id, name, bundle string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.UpdateCertificate(ctx, id, name, bundle)
	})
}

func (rc *retryingClient) DeleteCertificate(ctx context.Context, id string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.DeleteCertificate(ctx, id)
	})
}

func (rc *retryingClient) ListActivations(ctx context.Context) ([]certdeploy.Activation, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() ([]certdeploy.Activation, error) {
		return rc.Client.ListActivations(ctx)
	})
}

func (rc *retryingClient) GetActivation(ctx context.Context, id string) (certdeploy.Activation, error) {
	return retry(ctx, rc.maxElapsed, readRetryable, func() (certdeploy.Activation, error) {
		return rc.Client.GetActivation(ctx, id)
	})
}

func (rc *retryingClient) CreateActivation(ctx context.Context, certificateID, domain string) (string, error) {
	return retry(ctx, rc.maxElapsed, writeRetryable, func() (string, error) {
		return rc.Client.CreateActivation(ctx, certificateID, domain)
	})
}

func (rc *retryingClient) UpdateActivation(ctx context.Context, id, certificateID string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.UpdateActivation(ctx, id, certificateID)
	})
}

func (rc *retryingClient) DeleteActivation(ctx context.Context, id string) error {
	return retryWrite(ctx, rc.maxElapsed, func() error {
		return rc.Client.DeleteActivation(ctx, id)
	})
}

func retry[T any](ctx context.Context, maxElapsed time.Duration, retryable func(error) bool, op func() (T, error)) (T, error) {
	if maxElapsed <= 0 {
		return op()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = maxElapsed

	return backoff.RetryWithData(func() (T, error) {
		v, err := op()
		if err != nil && (ctx.Err() != nil || !retryable(err)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithContext(b, ctx))
}

func retryWrite(ctx context.Context, maxElapsed time.Duration, op func() error) error {
	_, err := retry(ctx, maxElapsed, writeRetryable, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

func readRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Retryable()
	}
	return false
}

// writeRetryable accepts only failures that happened before the request was
// completely written; anything later may already have been applied remotely.
func writeRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && !te.Sent
}
