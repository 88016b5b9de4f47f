// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy

import (
	"context"
	"time"
)

// Inventory indexes the remote private keys and certificates by PairingKey.
// Both slices keep the order in which the remote service listed them.
type Inventory struct {
	keys  map[PairingKey][]PrivateKey
	certs map[PairingKey][]Certificate
}

// NewInventory builds the join index from the two list results.
func NewInventory(keys []PrivateKey, certs []Certificate) Inventory {
	inv := Inventory{
		keys:  make(map[PairingKey][]PrivateKey),
		certs: make(map[PairingKey][]Certificate),
	}
	for _, k := range keys {
		pk := PairingKey(k.Name)
		inv.keys[pk] = append(inv.keys[pk], k)
	}
	for _, c := range certs {
		pk := PairingKey(c.Name)
		inv.certs[pk] = append(inv.certs[pk], c)
	}
	return inv
}

// PrivateKeys returns every key sharing the pairing key.
func (inv Inventory) PrivateKeys(pk PairingKey) []PrivateKey {
	return inv.keys[pk]
}

// Certificates returns every certificate sharing the pairing key.
func (inv Inventory) Certificates(pk PairingKey) []Certificate {
	return inv.certs[pk]
}

// PrivateKey selects the key for pk. When several keys share the name the
// one holding fingerprint wins, then the most recently created one, then the
// first listed.
func (inv Inventory) PrivateKey(pk PairingKey, fingerprint string) (PrivateKey, bool) {
	keys := inv.keys[pk]
	if len(keys) == 0 {
		return PrivateKey{}, false
	}
	if fingerprint != "" {
		for _, k := range keys {
			if KeyMatches(k, fingerprint) {
				return k, true
			}
		}
	}
	i := newest(len(keys), func(i int) (t int64) { return keys[i].CreatedAt.UnixNano() })
	return keys[i], true
}

// Certificate selects the certificate for pk: the most recently created one,
// else the first listed.
func (inv Inventory) Certificate(pk PairingKey) (Certificate, bool) {
	certs := inv.certs[pk]
	if len(certs) == 0 {
		return Certificate{}, false
	}
	i := newest(len(certs), func(i int) int64 { return certs[i].CreatedAt.UnixNano() })
	return certs[i], true
}

// PairedCertificate returns the certificate uploaded together with key: the
// earliest one created at or after the key and before the next key of the
// same name. Without usable timestamps no certificate is paired.
func (inv Inventory) PairedCertificate(pk PairingKey, key PrivateKey) (Certificate, bool) {
	if key.CreatedAt.IsZero() {
		return Certificate{}, false
	}
	var until time.Time
	for _, k := range inv.keys[pk] {
		if k.ID == key.ID {
			continue
		}
		if k.CreatedAt.IsZero() || k.CreatedAt.Equal(key.CreatedAt) {
			return Certificate{}, false
		}
		if k.CreatedAt.After(key.CreatedAt) && (until.IsZero() || k.CreatedAt.Before(until)) {
			until = k.CreatedAt
		}
	}

	var paired Certificate
	found := false
	for _, c := range inv.certs[pk] {
		if c.CreatedAt.Before(key.CreatedAt) {
			continue
		}
		if !until.IsZero() && !c.CreatedAt.Before(until) {
			continue
		}
		if !found || c.CreatedAt.Before(paired.CreatedAt) {
			paired, found = c, true
		}
	}
	return paired, found
}

// Ambiguous reports whether more than one key or certificate shares pk.
func (inv Inventory) Ambiguous(pk PairingKey) bool {
	return len(inv.keys[pk]) > 1 || len(inv.certs[pk]) > 1
}

// newest returns the index with the greatest creation time; ties, including
// resources that carry no timestamp, resolve to the earliest index.
func newest(n int, created func(int) int64) int {
	best := 0
	for i := 1; i < n; i++ {
		if created(i) > created(best) {
			best = i
		}
	}
	return best
}

// KeyMatches reports whether the remote key already holds the desired material.
func KeyMatches(key PrivateKey, fingerprint string) bool {
	return NormalizeFingerprint(key.PublicKeyFingerprint) == NormalizeFingerprint(fingerprint)
}

// Matcher locates remote resources belonging to a logical certificate.
// It only reads and tolerates an empty remote inventory.
type Matcher struct {
	client Client
}

// NewMatcher returns a matcher reading through client.
func NewMatcher(client Client) *Matcher {
	return &Matcher{client: client}
}

// FindPrivateKey returns the key named commonName, choosing among duplicates
// the same way Inventory.PrivateKey does without a fingerprint.
func (m *Matcher) FindPrivateKey(ctx context.Context, commonName string) (PrivateKey, bool, error) {
	keys, err := m.client.ListPrivateKeys(ctx)
	if err != nil {
		return PrivateKey{}, false, err
	}
	key, ok := NewInventory(keys, nil).PrivateKey(PairingKey(commonName), "")
	return key, ok, nil
}

// FindCertificate returns the certificate named commonName, choosing among
// duplicates the same way Inventory.Certificate does.
func (m *Matcher) FindCertificate(ctx context.Context, commonName string) (Certificate, bool, error) {
	certs, err := m.client.ListCertificates(ctx)
	if err != nil {
		return Certificate{}, false, err
	}
	cert, ok := NewInventory(nil, certs).Certificate(PairingKey(commonName))
	return cert, ok, nil
}

// Inventory lists keys and certificates and indexes them.
func (m *Matcher) Inventory(ctx context.Context) (Inventory, error) {
	keys, err := m.client.ListPrivateKeys(ctx)
	if err != nil {
		return Inventory{}, err
	}
	certs, err := m.client.ListCertificates(ctx)
	if err != nil {
		return Inventory{}, err
	}
	return NewInventory(keys, certs), nil
}
