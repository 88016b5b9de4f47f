// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package pemutil_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/absmach/certdeploy/pkg/errors"
	"github.com/absmach/certdeploy/pkg/pemutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfSigned(t *testing.T, subject pkix.Name, dnsNames []string) (string, *ecdsa.PrivateKey) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      subject,
		DNSNames:     dnsNames,
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})), key
}

func TestCommonName(t *testing.T) {
	withCN, _ := selfSigned(t, pkix.Name{CommonName: "example.com"}, []string{"www.example.com"})
	withSAN, _ := selfSigned(t, pkix.Name{Organization: []string{"Abstract Machines"}}, []string{"api.example.com"})
	bare, _ := selfSigned(t, pkix.Name{Organization: []string{"Abstract Machines"}}, nil)

	cases := []struct {
		desc string
		pem  string
		cn   string
		err  error
	}{
		{desc: "subject common name", pem: withCN, cn: "example.com"},
		{desc: "first DNS name", pem: withSAN, cn: "api.example.com"},
		{desc: "no identity", pem: bare, err: pemutil.ErrNoCommonName},
		{desc: "not PEM", pem: "garbage", err: pemutil.ErrNoPEMData},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cn, err := pemutil.CommonName(tc.pem)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cn, cn)
		})
	}
}

func TestPublicKeyFingerprint(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	require.NoError(t, err)
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)

	fingerprint := func(pub any) string {
		der, err := x509.MarshalPKIXPublicKey(pub)
		require.NoError(t, err)
		sum := sha1.Sum(der)
		return hex.EncodeToString(sum[:])
	}

	cases := []struct {
		desc     string
		pem      string
		expected string
		err      error
	}{
		{
			desc:     "PKCS1 RSA key",
			pem:      string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)})),
			expected: fingerprint(&rsaKey.PublicKey),
		},
		{
			desc:     "PKCS8 RSA key",
			pem:      string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})),
			expected: fingerprint(&rsaKey.PublicKey),
		},
		{
			desc:     "EC key",
			pem:      string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: ecDER})),
			expected: fingerprint(&ecKey.PublicKey),
		},
		{
			desc: "garbage key",
			pem:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("nope")})),
			err:  pemutil.ErrUnsupportedKeyType,
		},
		{
			desc: "empty input",
			pem:  "",
			err:  pemutil.ErrNoPEMData,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			fp, err := pemutil.PublicKeyFingerprint(tc.pem)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, fp)
			assert.Len(t, fp, 40)
		})
	}
}
