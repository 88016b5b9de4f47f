// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package certdeploy reconciles locally issued certificates onto a remote
// TLS-termination service that models private keys, certificate bundles and
// activations as separate resources.
//
// The remote resource collections are treated as an external store without
// transactions. Every invariant the package promises (no serving gap, no
// activation pointing at a deleted certificate, no key removed under a
// dependent certificate) is enforced by the order of remote calls, never by
// locking on the remote side.
package certdeploy

import (
	"context"
	"strings"
	"time"

	"github.com/absmach/certdeploy/pkg/errors"
)

var (
	// ErrLookupFailed indicates that the remote inventory could not be read.
	ErrLookupFailed = errors.New("failed to look up remote resources")

	// ErrUploadFailed indicates that new key or certificate material could not be created.
	ErrUploadFailed = errors.New("failed to upload certificate material")

	// ErrActivationPartialFailure indicates that one or more activations were not migrated.
	ErrActivationPartialFailure = errors.New("failed to migrate one or more activations")

	// ErrCleanupPartialFailure indicates that superseded resources were left behind.
	ErrCleanupPartialFailure = errors.New("failed to remove superseded resources")

	// ErrCanceled indicates that a run was canceled between steps.
	ErrCanceled = errors.New("reconciliation canceled")

	// ErrMissingCommonName indicates a certificate without identity.
	ErrMissingCommonName = errors.New("missing common name")

	// ErrMissingFingerprint indicates a certificate without public key fingerprint.
	ErrMissingFingerprint = errors.New("missing public key fingerprint")

	// ErrMissingMaterial indicates a certificate without PEM certificate or key.
	ErrMissingMaterial = errors.New("missing certificate or private key material")

	// ErrDuplicateCommonName indicates a batch that names the same identity twice.
	ErrDuplicateCommonName = errors.New("duplicate common name in batch")
)

// PairingKey joins remote private keys and certificates that belong to the
// same logical certificate. The remote service exposes no reference from a
// certificate to its key, so both sides are correlated by their name.
type PairingKey string

// LogicalCertificate is the desired state reconciled onto the remote service.
type LogicalCertificate struct {
	CommonName           string `json:"common_name"`
	CertificatePEM       string `json:"certificate"`
	ChainPEM             string `json:"chain,omitempty"`
	PrivateKeyPEM        string `json:"private_key"`
	PublicKeyFingerprint string `json:"public_key_fingerprint"`
}

// PairingKey returns the identity used to match remote resources.
func (lc LogicalCertificate) PairingKey() PairingKey {
	return PairingKey(lc.CommonName)
}

// Bundle returns the certificate body uploaded to the remote service.
func (lc LogicalCertificate) Bundle() string {
	return lc.CertificatePEM + "\n" + lc.ChainPEM
}

// Validate checks that the certificate carries everything a run needs.
func (lc LogicalCertificate) Validate() error {
	switch {
	case lc.CommonName == "":
		return ErrMissingCommonName
	case lc.PublicKeyFingerprint == "":
		return ErrMissingFingerprint
	case lc.CertificatePEM == "" || lc.PrivateKeyPEM == "":
		return ErrMissingMaterial
	}
	return nil
}

// PrivateKey is a remote private key resource.
type PrivateKey struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	PublicKeyFingerprint string    `json:"public_key_fingerprint"`
	CreatedAt            time.Time `json:"created_at,omitempty"`
}

// Certificate is a remote certificate bundle resource.
type Certificate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Activation binds a remote certificate to live traffic for a domain.
type Activation struct {
	ID            string `json:"id"`
	CertificateID string `json:"certificate_id"`
	Domain        string `json:"domain,omitempty"`
}

// NormalizeFingerprint lower-cases a hex fingerprint and drops separators.
func NormalizeFingerprint(fp string) string {
	fp = strings.ReplaceAll(fp, ":", "")
	return strings.ToLower(strings.TrimSpace(fp))
}

// Client is the remote resource protocol adapter. Every call performs
// exactly one round trip and never mutates local state; retries are the
// caller's concern.
//
//go:generate mockery --name Client --output=./mocks --filename client.go --quiet --note "Copyright (c) Abstract Machines"
type Client interface {
	// ListPrivateKeys returns all remote private keys.
	ListPrivateKeys(ctx context.Context) ([]PrivateKey, error)

	// GetPrivateKey returns a single remote private key.
	GetPrivateKey(ctx context.Context, id string) (PrivateKey, error)

	// CreatePrivateKey uploads key material under the given name and returns its id.
	CreatePrivateKey(ctx context.Context, name, keyPEM string) (string, error)

	// UpdatePrivateKey renames a private key. Key material itself is immutable.
	UpdatePrivateKey(ctx context.Context, id, name string) error

	// DeletePrivateKey removes a private key.
	DeletePrivateKey(ctx context.Context, id string) error

	// ListCertificates returns all remote certificates.
	ListCertificates(ctx context.Context) ([]Certificate, error)

	// GetCertificate returns a single remote certificate.
	GetCertificate(ctx context.Context, id string) (Certificate, error)

	// CreateCertificate uploads a certificate bundle and returns its id.
	CreateCertificate(ctx context.Context, name, bundle string) (string, error)

	// UpdateCertificate replaces the name and bundle of a certificate.
	UpdateCertificate(ctx context.Context, id, name, bundle string) error

	// DeleteCertificate removes a certificate.
	DeleteCertificate(ctx context.Context, id string) error

	// ListActivations returns all remote activations.
	ListActivations(ctx context.Context) ([]Activation, error)

	// GetActivation returns a single remote activation.
	GetActivation(ctx context.Context, id string) (Activation, error)

	// CreateActivation binds a certificate to a domain and returns the activation id.
	CreateActivation(ctx context.Context, certificateID, domain string) (string, error)

	// UpdateActivation points an activation at another certificate.
	UpdateActivation(ctx context.Context, id, certificateID string) error

	// DeleteActivation removes an activation.
	DeleteActivation(ctx context.Context, id string) error
}

// Destination is a deployment target capable of reconciling a certificate.
// Each destination kind provides its own implementation; Reconciler is the
// one for resource-oriented TLS services.
//
//go:generate mockery --name Destination --output=./mocks --filename destination.go --quiet --note "Copyright (c) Abstract Machines"
type Destination interface {
	// Reconcile brings the destination in line with the given certificate.
	Reconcile(ctx context.Context, lc LogicalCertificate) (Report, error)
}

// PageMetadata contains page and filter parameters for report listing.
type PageMetadata struct {
	Total      uint64 `json:"total"`
	Offset     uint64 `json:"offset,omitempty" db:"offset"`
	Limit      uint64 `json:"limit,omitempty" db:"limit"`
	CommonName string `json:"common_name,omitempty" db:"common_name"`
}

// ReportPage is a page of reconciliation reports.
type ReportPage struct {
	PageMetadata
	Reports []Report `json:"reports"`
}

//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) Abstract Machines"
type Service interface {
	// Reconcile deploys a certificate to the destination and records the report.
	// Runs for the same common name are serialized.
	Reconcile(ctx context.Context, lc LogicalCertificate) (Report, error)

	// ReconcileBatch deploys certificates with distinct common names concurrently.
	ReconcileBatch(ctx context.Context, lcs []LogicalCertificate) ([]Report, error)

	// ViewReport retrieves a recorded reconciliation report.
	ViewReport(ctx context.Context, id string) (Report, error)

	// ListReports retrieves recorded reports while applying filters.
	ListReports(ctx context.Context, pm PageMetadata) (ReportPage, error)
}

//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) Abstract Machines"
type Repository interface {
	// Save stores a reconciliation report.
	Save(ctx context.Context, r Report) error

	// Retrieve returns a report by id.
	Retrieve(ctx context.Context, id string) (Report, error)

	// List returns reports matching the page metadata, newest first.
	List(ctx context.Context, pm PageMetadata) (ReportPage, error)
}
