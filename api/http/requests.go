// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"strings"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/apiutil"
	"github.com/absmach/certdeploy/pkg/errors"
	"github.com/absmach/certdeploy/pkg/pemutil"
)

const (
	maxLimitSize = 100
	maxBatchSize = 100
)

type deployReq struct {
	CommonName           string `json:"common_name,omitempty"`
	Certificate          string `json:"certificate"`
	Chain                string `json:"chain,omitempty"`
	PrivateKey           string `json:"private_key"`
	PublicKeyFingerprint string `json:"public_key_fingerprint,omitempty"`
}

func (req deployReq) validate() error {
	if strings.TrimSpace(req.Certificate) == "" {
		return apiutil.ErrMissingCertificate
	}
	if strings.TrimSpace(req.PrivateKey) == "" {
		return apiutil.ErrMissingPrivateKey
	}
	return nil
}

// logical fills in whatever identity the caller left out from the PEM
// material itself.
func (req deployReq) logical() (certdeploy.LogicalCertificate, error) {
	lc := certdeploy.LogicalCertificate{
		CommonName:           strings.TrimSpace(req.CommonName),
		CertificatePEM:       req.Certificate,
		ChainPEM:             req.Chain,
		PrivateKeyPEM:        req.PrivateKey,
		PublicKeyFingerprint: certdeploy.NormalizeFingerprint(req.PublicKeyFingerprint),
	}
	if lc.CommonName == "" {
		cn, err := pemutil.CommonName(req.Certificate)
		if err != nil {
			return certdeploy.LogicalCertificate{}, errors.Wrap(apiutil.ErrValidation, err)
		}
		lc.CommonName = cn
	}
	if lc.PublicKeyFingerprint == "" {
		fp, err := pemutil.PublicKeyFingerprint(req.PrivateKey)
		if err != nil {
			return certdeploy.LogicalCertificate{}, errors.Wrap(apiutil.ErrValidation, err)
		}
		lc.PublicKeyFingerprint = fp
	}
	return lc, nil
}

type deployBatchReq struct {
	Certificates []deployReq `json:"certificates"`
}

func (req deployBatchReq) validate() error {
	if len(req.Certificates) == 0 {
		return apiutil.ErrEmptyList
	}
	if len(req.Certificates) > maxBatchSize {
		return apiutil.ErrLimitSize
	}
	for _, c := range req.Certificates {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (req deployBatchReq) logical() ([]certdeploy.LogicalCertificate, error) {
	lcs := make([]certdeploy.LogicalCertificate, 0, len(req.Certificates))
	for _, c := range req.Certificates {
		lc, err := c.logical()
		if err != nil {
			return nil, err
		}
		lcs = append(lcs, lc)
	}
	return lcs, nil
}

type viewReportReq struct {
	id string
}

func (req viewReportReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	return nil
}

type listReportsReq struct {
	pm certdeploy.PageMetadata
}

func (req listReportsReq) validate() error {
	if req.pm.Limit == 0 || req.pm.Limit > maxLimitSize {
		return apiutil.ErrLimitSize
	}
	return nil
}
