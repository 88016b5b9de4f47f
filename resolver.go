// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy

import "context"

// Resolver finds the activations that currently serve a certificate.
type Resolver struct {
	client Client
}

// NewResolver returns a resolver reading through client.
func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// ActivationsFor returns every activation bound to certificateID. A
// certificate nobody serves yields an empty slice.
func (r *Resolver) ActivationsFor(ctx context.Context, certificateID string) ([]Activation, error) {
	all, err := r.client.ListActivations(ctx)
	if err != nil {
		return nil, err
	}
	acts := []Activation{}
	for _, a := range all {
		if a.CertificateID == certificateID {
			acts = append(acts, a)
		}
	}
	return acts, nil
}

// ActivationsByCertificate groups all activations by certificate id.
func (r *Resolver) ActivationsByCertificate(ctx context.Context) (map[string][]Activation, error) {
	all, err := r.client.ListActivations(ctx)
	if err != nil {
		return nil, err
	}
	byCert := make(map[string][]Activation)
	for _, a := range all {
		byCert[a.CertificateID] = append(byCert[a.CertificateID], a)
	}
	return byCert, nil
}
