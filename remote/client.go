// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package remote implements the resource protocol of JSON:API style TLS
// termination services that keep private keys, certificates and activations
// in separate collections.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
	"moul.io/http2curl"
)

// ContentType is the media type of every request and response body.
const ContentType = "application/vnd.api+json"

type client struct {
	url     string
	apiKey  string
	header  string
	scheme  string
	paths   Paths
	http    *http.Client
	limiter *rate.Limiter
	dump    bool
	logger  *slog.Logger
}

var _ certdeploy.Client = (*client)(nil)

// NewClient returns a client for the remote service described by cfg.
func NewClient(cfg Config, logger *slog.Logger) certdeploy.Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	paths := cfg.Paths
	def := DefaultPaths()
	if paths.PrivateKeys == "" {
		paths.PrivateKeys = def.PrivateKeys
	}
	if paths.Certificates == "" {
		paths.Certificates = def.Certificates
	}
	if paths.Activations == "" {
		paths.Activations = def.Activations
	}

	return &client{
		url:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey: cfg.APIKey,
		header: cfg.APIKeyHeader,
		scheme: cfg.APIKeyScheme,
		paths:  paths,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		dump:    cfg.DumpRequests,
		logger:  logger,
	}
}

func (c *client) ListPrivateKeys(ctx context.Context) ([]certdeploy.PrivateKey, error) {
	var doc listDocument
	if err := c.do(ctx, "list private keys", http.MethodGet, c.paths.PrivateKeys, nil, &doc); err != nil {
		return nil, err
	}
	keys := make([]certdeploy.PrivateKey, 0, len(doc.Data))
	for _, r := range doc.Data {
		k, err := r.privateKey()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (c *client) GetPrivateKey(ctx context.Context, id string) (certdeploy.PrivateKey, error) {
	var doc document
	if err := c.do(ctx, "get private key", http.MethodGet, c.item(c.paths.PrivateKeys, id), nil, &doc); err != nil {
		return certdeploy.PrivateKey{}, err
	}
	return doc.Data.privateKey()
}

func (c *client) CreatePrivateKey(ctx context.Context, name, keyPEM string) (string, error) {
	req := document{Data: resource{
		Type:       typePrivateKey,
		Attributes: map[string]any{"key": keyPEM, "name": name},
	}}
	return c.create(ctx, "create private key", c.paths.PrivateKeys, req)
}

func (c *client) UpdatePrivateKey(ctx context.Context, id, name string) error {
	req := document{Data: resource{
		ID:         id,
		Type:       typePrivateKey,
		Attributes: map[string]any{"name": name},
	}}
	return c.do(ctx, "update private key", http.MethodPatch, c.item(c.paths.PrivateKeys, id), req, nil)
}

func (c *client) DeletePrivateKey(ctx context.Context, id string) error {
	return c.do(ctx, "delete private key", http.MethodDelete, c.item(c.paths.PrivateKeys, id), nil, nil)
}

func (c *client) ListCertificates(ctx context.Context) ([]certdeploy.Certificate, error) {
	var doc listDocument
	if err := c.do(ctx, "list certificates", http.MethodGet, c.paths.Certificates, nil, &doc); err != nil {
		return nil, err
	}
	certs := make([]certdeploy.Certificate, 0, len(doc.Data))
	for _, r := range doc.Data {
		cert, err := r.certificate()
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

func (c *client) GetCertificate(ctx context.Context, id string) (certdeploy.Certificate, error) {
	var doc document
	if err := c.do(ctx, "get certificate", http.MethodGet, c.item(c.paths.Certificates, id), nil, &doc); err != nil {
		return certdeploy.Certificate{}, err
	}
	return doc.Data.certificate()
}

func (c *client) CreateCertificate(ctx context.Context, name, bundle string) (string, error) {
	req := document{Data: resource{
		Type:       typeCertificate,
		Attributes: map[string]any{"cert_blob": bundle, "name": name},
	}}
	return c.create(ctx, "create certificate", c.paths.Certificates, req)
}

func (c *client) UpdateCertificate(ctx context.Context, id, name, bundle string) error {
	req := document{Data: resource{
		ID:         id,
		Type:       typeCertificate,
		Attributes: map[string]any{"cert_blob": bundle, "name": name},
	}}
	return c.do(ctx, "update certificate", http.MethodPatch, c.item(c.paths.Certificates, id), req, nil)
}

func (c *client) DeleteCertificate(ctx context.Context, id string) error {
	return c.do(ctx, "delete certificate", http.MethodDelete, c.item(c.paths.Certificates, id), nil, nil)
}

func (c *client) ListActivations(ctx context.Context) ([]certdeploy.Activation, error) {
	var doc listDocument
	if err := c.do(ctx, "list activations", http.MethodGet, c.paths.Activations, nil, &doc); err != nil {
		return nil, err
	}
	acts := make([]certdeploy.Activation, 0, len(doc.Data))
	for _, r := range doc.Data {
		acts = append(acts, r.activation())
	}
	return acts, nil
}

func (c *client) GetActivation(ctx context.Context, id string) (certdeploy.Activation, error) {
	var doc document
	if err := c.do(ctx, "get activation", http.MethodGet, c.item(c.paths.Activations, id), nil, &doc); err != nil {
		return certdeploy.Activation{}, err
	}
	return doc.Data.activation(), nil
}

func (c *client) CreateActivation(ctx context.Context, certificateID, domain string) (string, error) {
	req := document{Data: resource{
		Type: typeActivation,
		Relationships: map[string]relationship{
			relCertificate: toOne(typeCertificate, certificateID),
			relDomain:      toOne(typeDomain, domain),
		},
	}}
	return c.create(ctx, "create activation", c.paths.Activations, req)
}

func (c *client) UpdateActivation(ctx context.Context, id, certificateID string) error {
	req := document{Data: resource{
		ID:   id,
		Type: typeActivation,
		Relationships: map[string]relationship{
			relCertificate: toOne(typeCertificate, certificateID),
		},
	}}
	return c.do(ctx, "update activation", http.MethodPatch, c.item(c.paths.Activations, id), req, nil)
}

func (c *client) DeleteActivation(ctx context.Context, id string) error {
	return c.do(ctx, "delete activation", http.MethodDelete, c.item(c.paths.Activations, id), nil, nil)
}

func (c *client) create(ctx context.Context, op, path string, req document) (string, error) {
	var doc document
	if err := c.do(ctx, op, http.MethodPost, path, req, &doc); err != nil {
		return "", err
	}
	if doc.Data.ID == "" {
		return "", errors.Wrap(errMalformedResponse, errors.New("missing resource id"))
	}
	return doc.Data.ID, nil
}

func (c *client) item(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// do performs exactly one round trip. Any non-2xx status is an *APIError and
// any failure to exchange the request is a *TransportError.
func (c *client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", ContentType)
	req.Header.Set("Content-Type", ContentType)

	if c.dump {
		// Dumped before the API key is attached so it never reaches the log.
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return err
		}
		c.logger.Debug("remote request", slog.String("op", op), slog.String("curl", curlCommand.String()))
	}

	if c.apiKey != "" {
		key := c.apiKey
		if c.scheme != "" {
			key = c.scheme + " " + key
		}
		req.Header.Set(c.header, key)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: op, Cause: err}
	}

	var sent atomic.Bool
	trace := &httptrace.ClientTrace{
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err == nil {
				sent.Store(true)
			}
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Cause: err, Sent: sent.Load()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Cause: err, Sent: true}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errMalformedResponse, err)
	}
	return nil
}
