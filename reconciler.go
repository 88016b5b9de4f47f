// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
)

var (
	errCertificateInUse = errors.New("certificate is still referenced by activations")
	errKeyInUse         = errors.New("private key may still back a certificate of the same name")
	errActivationsRead  = errors.New("failed to resolve activations")
)

// Options tune the reconciler.
type Options struct {
	// SweepOrphans removes same-name keys and certificates left behind by
	// earlier aborted runs, as long as no activation references them.
	SweepOrphans bool
}

// Reconciler deploys a logical certificate onto a resource-oriented TLS
// service. Runs for the same common name must not overlap; Service takes
// care of that.
type Reconciler struct {
	client   Client
	matcher  *Matcher
	resolver *Resolver
	logger   *slog.Logger
	opts     Options
	now      func() time.Time
}

var _ Destination = (*Reconciler)(nil)

// NewReconciler returns a reconciler talking to the remote service through client.
func NewReconciler(client Client, logger *slog.Logger, opts Options) *Reconciler {
	return &Reconciler{
		client:   client,
		matcher:  NewMatcher(client),
		resolver: NewResolver(client),
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Reconcile runs Lookup, Upload, Activate and Cleanup in that order.
// Errors are returned only when nothing was deployed; failures after the new
// material is live are recorded in the report, which is always complete.
func (rc *Reconciler) Reconcile(ctx context.Context, lc LogicalCertificate) (Report, error) {
	rep := Report{
		CommonName:  lc.CommonName,
		Fingerprint: NormalizeFingerprint(lc.PublicKeyFingerprint),
		StartedAt:   rc.now().UTC(),
	}
	logger := rc.logger.With(slog.String("common_name", lc.CommonName))

	if err := lc.Validate(); err != nil {
		rep.fail(StageValidate, "", err)
		return rc.finish(rep, ActionFailed), errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	inv, err := rc.matcher.Inventory(ctx)
	if err != nil {
		rep.fail(StageLookup, "", err)
		logger.Warn("failed to read remote inventory", slog.Any("error", err))
		return rc.finish(rep, ActionFailed), errors.Wrap(ErrLookupFailed, err)
	}
	pk := lc.PairingKey()
	if inv.Ambiguous(pk) {
		detail := fmt.Sprintf("%d private keys and %d certificates share the name", len(inv.PrivateKeys(pk)), len(inv.Certificates(pk)))
		rep.record(StageLookup, OpSkipped, KindPrivateKey, "", detail)
		logger.Warn("ambiguous remote inventory", slog.Int("private_keys", len(inv.PrivateKeys(pk))), slog.Int("certificates", len(inv.Certificates(pk))))
	}

	oldKey, hasKey := inv.PrivateKey(pk, lc.PublicKeyFingerprint)
	if hasKey && KeyMatches(oldKey, lc.PublicKeyFingerprint) {
		rep.record(StageLookup, OpSkipped, KindPrivateKey, oldKey.ID, "private key already deployed")
		if rc.opts.SweepOrphans && inv.Ambiguous(pk) {
			rc.sweep(ctx, &rep, logger, inv, pk, oldKey)
		}
		logger.Debug("certificate up to date", slog.String("private_key_id", oldKey.ID))
		return rc.finish(rep, ActionUpToDate), nil
	}

	var old ResourceIDs
	if hasKey {
		old.PrivateKeyID = oldKey.ID
		if cert, ok := inv.Certificate(pk); ok {
			old.CertificateID = cert.ID
		}
	}

	if err := ctx.Err(); err != nil {
		rep.fail(StageUpload, "", err)
		return rc.finish(rep, ActionFailed), errors.Wrap(ErrCanceled, err)
	}

	created, err := rc.upload(ctx, &rep, lc)
	if err != nil {
		logger.Warn("failed to upload certificate material", slog.Any("error", err))
		return rc.finish(rep, ActionFailed), errors.Wrap(ErrUploadFailed, err)
	}
	logger.Info("uploaded certificate material",
		slog.String("private_key_id", created.PrivateKeyID),
		slog.String("certificate_id", created.CertificateID),
	)

	if rc.canceled(ctx, &rep, StageActivate) {
		return rc.finish(rep, ActionPartiallyFailed), nil
	}
	if old.CertificateID != "" {
		rc.activate(ctx, &rep, old.CertificateID, created.CertificateID)
		if len(rep.FailedActivations) > 0 {
			logger.Warn("some activations were not migrated", slog.Any("failed_activations", rep.FailedActivations))
		}
	}

	if rc.canceled(ctx, &rep, StageCleanup) {
		return rc.finish(rep, ActionPartiallyFailed), nil
	}
	if old.CertificateID != "" || old.PrivateKeyID != "" || (rc.opts.SweepOrphans && inv.Ambiguous(pk)) {
		rc.cleanup(ctx, &rep, inv, pk, created, old, time.Time{})
	}

	if len(rep.Errors) > 0 {
		return rc.finish(rep, ActionPartiallyFailed), nil
	}
	return rc.finish(rep, ActionUploaded), nil
}

// upload creates the key first since the remote service pairs a new
// certificate with an already stored key. A key whose certificate could not
// be created is removed again so it is never mistaken for deployed material.
func (rc *Reconciler) upload(ctx context.Context, rep *Report, lc LogicalCertificate) (ResourceIDs, error) {
	keyID, err := rc.client.CreatePrivateKey(ctx, lc.CommonName, lc.PrivateKeyPEM)
	if err != nil {
		rep.record(StageUpload, OpFailed, KindPrivateKey, "", err.Error())
		rep.fail(StageUpload, "", err)
		return ResourceIDs{}, err
	}
	rep.record(StageUpload, OpCreated, KindPrivateKey, keyID, "")
	rep.Created.PrivateKeyID = keyID

	certID, err := rc.client.CreateCertificate(ctx, lc.CommonName, lc.Bundle())
	if err != nil {
		rep.record(StageUpload, OpFailed, KindCertificate, "", err.Error())
		rep.fail(StageUpload, "", err)
		if derr := rc.client.DeletePrivateKey(context.WithoutCancel(ctx), keyID); derr != nil {
			rep.record(StageUpload, OpFailed, KindPrivateKey, keyID, derr.Error())
			rep.fail(StageUpload, keyID, derr)
			return ResourceIDs{}, err
		}
		rep.record(StageUpload, OpDeleted, KindPrivateKey, keyID, "certificate upload failed")
		rep.Created.PrivateKeyID = ""
		return ResourceIDs{}, err
	}
	rep.record(StageUpload, OpCreated, KindCertificate, certID, "")
	rep.Created.CertificateID = certID

	return rep.Created, nil
}

// activate repoints every activation of the old certificate. Each update is
// independent; a failed one leaves its domain on the old, still valid material.
func (rc *Reconciler) activate(ctx context.Context, rep *Report, oldCertID, newCertID string) {
	acts, err := rc.resolver.ActivationsFor(ctx, oldCertID)
	if err != nil {
		rep.fail(StageActivate, oldCertID, errors.Wrap(ErrActivationPartialFailure, errors.Wrap(errActivationsRead, err)))
		return
	}
	for _, a := range acts {
		if err := rc.client.UpdateActivation(ctx, a.ID, newCertID); err != nil {
			rep.record(StageActivate, OpFailed, KindActivation, a.ID, err.Error())
			rep.fail(StageActivate, a.ID, errors.Wrap(ErrActivationPartialFailure, err))
			rep.FailedActivations = append(rep.FailedActivations, a.ID)
			continue
		}
		rep.record(StageActivate, OpUpdated, KindActivation, a.ID, newCertID)
		rep.Migrated = append(rep.Migrated, a.ID)
	}
}

// sweep removes orphans next to an already deployed key. Only resources
// created before that key are candidates, and nothing is touched unless the
// certificate uploaded with the key can be identified.
func (rc *Reconciler) sweep(ctx context.Context, rep *Report, logger *slog.Logger, inv Inventory, pk PairingKey, key PrivateKey) {
	cert, ok := inv.PairedCertificate(pk, key)
	if !ok {
		rep.record(StageCleanup, OpSkipped, KindCertificate, "", "no certificate pairs with the deployed private key")
		logger.Warn("skipped orphan sweep", slog.String("private_key_id", key.ID))
		return
	}
	keep := ResourceIDs{PrivateKeyID: key.ID, CertificateID: cert.ID}
	rc.cleanup(ctx, rep, inv, pk, keep, ResourceIDs{}, key.CreatedAt)
}

// cleanup deletes superseded certificates before their keys. A certificate
// still referenced by an activation is kept, and so is every key of the same
// name while such a certificate remains. A non-zero before limits swept
// orphans to resources created earlier than that.
func (rc *Reconciler) cleanup(ctx context.Context, rep *Report, inv Inventory, pk PairingKey, keep, old ResourceIDs, before time.Time) {
	var certs, keys []string
	if old.CertificateID != "" {
		certs = append(certs, old.CertificateID)
	}
	if old.PrivateKeyID != "" {
		keys = append(keys, old.PrivateKeyID)
	}

	// Same-name certificates outside the plan still pin every key of that name.
	remaining := 0
	for _, c := range inv.Certificates(pk) {
		if c.ID == keep.CertificateID || c.ID == old.CertificateID {
			continue
		}
		if rc.opts.SweepOrphans && createdBefore(c.CreatedAt, before) {
			certs = append(certs, c.ID)
			continue
		}
		remaining++
	}
	if rc.opts.SweepOrphans {
		for _, k := range inv.PrivateKeys(pk) {
			if k.ID != keep.PrivateKeyID && k.ID != old.PrivateKeyID && createdBefore(k.CreatedAt, before) {
				keys = append(keys, k.ID)
			}
		}
	}
	if len(certs) == 0 && len(keys) == 0 {
		return
	}

	byCert, err := rc.resolver.ActivationsByCertificate(ctx)
	if err != nil {
		err = errors.Wrap(ErrCleanupPartialFailure, errors.Wrap(errActivationsRead, err))
		for _, id := range certs {
			rep.record(StageCleanup, OpSkipped, KindCertificate, id, err.Error())
			rep.fail(StageCleanup, id, err)
		}
		for _, id := range keys {
			rep.record(StageCleanup, OpSkipped, KindPrivateKey, id, err.Error())
			rep.fail(StageCleanup, id, err)
		}
		return
	}

	for _, id := range certs {
		if n := len(byCert[id]); n > 0 {
			rep.record(StageCleanup, OpSkipped, KindCertificate, id, fmt.Sprintf("referenced by %d activations", n))
			rep.fail(StageCleanup, id, errors.Wrap(ErrCleanupPartialFailure, errCertificateInUse))
			remaining++
			continue
		}
		if err := rc.client.DeleteCertificate(ctx, id); err != nil {
			rep.record(StageCleanup, OpFailed, KindCertificate, id, err.Error())
			rep.fail(StageCleanup, id, errors.Wrap(ErrCleanupPartialFailure, err))
			remaining++
			continue
		}
		rep.record(StageCleanup, OpDeleted, KindCertificate, id, "")
		if id == old.CertificateID {
			rep.Deleted.CertificateID = id
		}
	}

	for _, id := range keys {
		if remaining > 0 {
			rep.record(StageCleanup, OpSkipped, KindPrivateKey, id, fmt.Sprintf("%d certificates of the same name remain", remaining))
			rep.fail(StageCleanup, id, errors.Wrap(ErrCleanupPartialFailure, errKeyInUse))
			continue
		}
		if err := rc.client.DeletePrivateKey(ctx, id); err != nil {
			rep.record(StageCleanup, OpFailed, KindPrivateKey, id, err.Error())
			rep.fail(StageCleanup, id, errors.Wrap(ErrCleanupPartialFailure, err))
			continue
		}
		rep.record(StageCleanup, OpDeleted, KindPrivateKey, id, "")
		if id == old.PrivateKeyID {
			rep.Deleted.PrivateKeyID = id
		}
	}
}

func createdBefore(t, limit time.Time) bool {
	return limit.IsZero() || (!t.IsZero() && t.Before(limit))
}

func (rc *Reconciler) canceled(ctx context.Context, rep *Report, next Stage) bool {
	if err := ctx.Err(); err != nil {
		rep.fail(next, "", errors.Wrap(ErrCanceled, err))
		return true
	}
	return false
}

func (rc *Reconciler) finish(rep Report, action Action) Report {
	rep.Action = action
	rep.FinishedAt = rc.now().UTC()
	return rep
}
