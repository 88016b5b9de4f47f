// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package pemutil extracts the identity fields a deployment needs from PEM
// encoded certificates and private keys.
package pemutil

import (
	"crypto"
	"crypto/sha1" //nolint:gosec // the remote services key on SHA-1 of the public key
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"strings"

	"github.com/absmach/certdeploy/pkg/errors"
)

var (
	ErrNoPEMData          = errors.New("no PEM data found")
	ErrUnsupportedKeyType = errors.New("unsupported private key type")
	ErrNoCommonName       = errors.New("certificate carries neither common name nor DNS name")
)

// ParseCertificate decodes the first certificate of a PEM bundle.
func ParseCertificate(certPEM string) (*x509.Certificate, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, ErrNoPEMData
	}
	return x509.ParseCertificate(block.Bytes)
}

// CommonName returns the subject common name, falling back to the first DNS
// name when the subject has none.
func CommonName(certPEM string) (string, error) {
	cert, err := ParseCertificate(certPEM)
	if err != nil {
		return "", err
	}
	if cn := strings.TrimSpace(cert.Subject.CommonName); cn != "" {
		return cn, nil
	}
	if len(cert.DNSNames) > 0 {
		return strings.TrimSpace(cert.DNSNames[0]), nil
	}
	return "", ErrNoCommonName
}

// PublicKeyFingerprint returns the lowercase hex SHA-1 of the DER encoded
// public key belonging to keyPEM.
func PublicKeyFingerprint(keyPEM string) (string, error) {
	block, _ := pem.Decode([]byte(keyPEM))
	if block == nil {
		return "", ErrNoPEMData
	}
	signer, err := parsePrivateKey(block.Bytes)
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(signer.Public())
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(der) //nolint:gosec
	return hex.EncodeToString(sum[:]), nil
}

func parsePrivateKey(der []byte) (crypto.Signer, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, ErrUnsupportedKeyType
		}
		return signer, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedKeyType, err)
	}
	return key, nil
}
