// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/errors"
)

var (
	errRejected = errors.New("remote rejected the request")
	errInjected = errors.New("injected failure")
)

type call struct {
	Method string
	ID     string
}

// fakeRemote is an in-memory TLS service. It refuses the deletions a real
// service refuses: a certificate that is still activated, and a key that
// still backs a certificate.
type fakeRemote struct {
	mu      sync.Mutex
	seq     int
	clock   time.Time
	keys    []certdeploy.PrivateKey
	certs   []certdeploy.Certificate
	acts    []certdeploy.Activation
	certKey map[string]string
	calls   []call

	// fail maps a method name, or "Method:id", to an injected error.
	fail map[string]error
	// afterMutation runs after every successful write.
	afterMutation func()
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		certKey: make(map[string]string),
		fail:    make(map[string]error),
	}
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeRemote) addKey(name, fingerprint string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("key")
	f.keys = append(f.keys, certdeploy.PrivateKey{ID: id, Name: name, PublicKeyFingerprint: fingerprint, CreatedAt: f.tick()})
	return id
}

func (f *fakeRemote) addCert(name, keyID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("cert")
	f.certs = append(f.certs, certdeploy.Certificate{ID: id, Name: name, CreatedAt: f.tick()})
	f.certKey[id] = keyID
	return id
}

func (f *fakeRemote) addActivation(certID, domain string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("act")
	f.acts = append(f.acts, certdeploy.Activation{ID: id, CertificateID: certID, Domain: domain})
	return id
}

func (f *fakeRemote) enter(method, id string) error {
	f.calls = append(f.calls, call{Method: method, ID: id})
	if err, ok := f.fail[method+":"+id]; ok {
		return err
	}
	return f.fail[method]
}

func (f *fakeRemote) mutated() {
	if f.afterMutation != nil {
		f.afterMutation()
	}
}

// mutations returns the write calls in order.
func (f *fakeRemote) mutations() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ret []call
	for _, c := range f.calls {
		if strings.HasPrefix(c.Method, "Create") || strings.HasPrefix(c.Method, "Update") || strings.HasPrefix(c.Method, "Delete") {
			ret = append(ret, c)
		}
	}
	return ret
}

func (f *fakeRemote) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// servingFingerprint returns the key fingerprint served through an activation.
func (f *fakeRemote) servingFingerprint(a certdeploy.Activation) (string, bool) {
	keyID, ok := f.certKey[a.CertificateID]
	if !ok {
		return "", false
	}
	for _, k := range f.keys {
		if k.ID == keyID {
			return k.PublicKeyFingerprint, true
		}
	}
	return "", false
}

func (f *fakeRemote) snapshot() ([]certdeploy.PrivateKey, []certdeploy.Certificate, []certdeploy.Activation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]certdeploy.PrivateKey{}, f.keys...), append([]certdeploy.Certificate{}, f.certs...), append([]certdeploy.Activation{}, f.acts...)
}

func (f *fakeRemote) ListPrivateKeys(ctx context.Context) ([]certdeploy.PrivateKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListPrivateKeys", ""); err != nil {
		return nil, err
	}
	return append([]certdeploy.PrivateKey{}, f.keys...), nil
}

func (f *fakeRemote) GetPrivateKey(ctx context.Context, id string) (certdeploy.PrivateKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetPrivateKey", id); err != nil {
		return certdeploy.PrivateKey{}, err
	}
	for _, k := range f.keys {
		if k.ID == id {
			return k, nil
		}
	}
	return certdeploy.PrivateKey{}, errRejected
}

func (f *fakeRemote) CreatePrivateKey(ctx context.Context, name, keyPEM string) (string, error) {
	f.mu.Lock()
	if err := f.enter("CreatePrivateKey", ""); err != nil {
		f.mu.Unlock()
		return "", err
	}
	id := f.nextID("key")
	f.keys = append(f.keys, certdeploy.PrivateKey{ID: id, Name: name, PublicKeyFingerprint: fingerprintOf(keyPEM), CreatedAt: f.tick()})
	f.calls[len(f.calls)-1].ID = id
	f.mu.Unlock()
	f.mutated()
	return id, nil
}

func (f *fakeRemote) UpdatePrivateKey(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdatePrivateKey", id); err != nil {
		return err
	}
	for i := range f.keys {
		if f.keys[i].ID == id {
			f.keys[i].Name = name
			return nil
		}
	}
	return errRejected
}

func (f *fakeRemote) DeletePrivateKey(ctx context.Context, id string) error {
	f.mu.Lock()
	if err := f.enter("DeletePrivateKey", id); err != nil {
		f.mu.Unlock()
		return err
	}
	for _, c := range f.certs {
		if f.certKey[c.ID] == id {
			f.mu.Unlock()
			return errRejected
		}
	}
	for i, k := range f.keys {
		if k.ID == id {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			f.mu.Unlock()
			f.mutated()
			return nil
		}
	}
	f.mu.Unlock()
	return errRejected
}

func (f *fakeRemote) ListCertificates(ctx context.Context) ([]certdeploy.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListCertificates", ""); err != nil {
		return nil, err
	}
	return append([]certdeploy.Certificate{}, f.certs...), nil
}

func (f *fakeRemote) GetCertificate(ctx context.Context, id string) (certdeploy.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetCertificate", id); err != nil {
		return certdeploy.Certificate{}, err
	}
	for _, c := range f.certs {
		if c.ID == id {
			return c, nil
		}
	}
	return certdeploy.Certificate{}, errRejected
}

// CreateCertificate pairs the certificate with the newest key of the same
// name, the way the remote service finds the key matching the bundle.
func (f *fakeRemote) CreateCertificate(ctx context.Context, name, bundle string) (string, error) {
	f.mu.Lock()
	if err := f.enter("CreateCertificate", ""); err != nil {
		f.mu.Unlock()
		return "", err
	}
	keyID := ""
	for _, k := range f.keys {
		if k.Name == name {
			keyID = k.ID
		}
	}
	if keyID == "" {
		f.mu.Unlock()
		return "", errRejected
	}
	id := f.nextID("cert")
	f.certs = append(f.certs, certdeploy.Certificate{ID: id, Name: name, CreatedAt: f.tick()})
	f.certKey[id] = keyID
	f.calls[len(f.calls)-1].ID = id
	f.mu.Unlock()
	f.mutated()
	return id, nil
}

func (f *fakeRemote) UpdateCertificate(ctx context.Context, id, name, bundle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enter("UpdateCertificate", id)
}

func (f *fakeRemote) DeleteCertificate(ctx context.Context, id string) error {
	f.mu.Lock()
	if err := f.enter("DeleteCertificate", id); err != nil {
		f.mu.Unlock()
		return err
	}
	for _, a := range f.acts {
		if a.CertificateID == id {
			f.mu.Unlock()
			return errRejected
		}
	}
	for i, c := range f.certs {
		if c.ID == id {
			f.certs = append(f.certs[:i], f.certs[i+1:]...)
			delete(f.certKey, id)
			f.mu.Unlock()
			f.mutated()
			return nil
		}
	}
	f.mu.Unlock()
	return errRejected
}

func (f *fakeRemote) ListActivations(ctx context.Context) ([]certdeploy.Activation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListActivations", ""); err != nil {
		return nil, err
	}
	return append([]certdeploy.Activation{}, f.acts...), nil
}

func (f *fakeRemote) GetActivation(ctx context.Context, id string) (certdeploy.Activation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetActivation", id); err != nil {
		return certdeploy.Activation{}, err
	}
	for _, a := range f.acts {
		if a.ID == id {
			return a, nil
		}
	}
	return certdeploy.Activation{}, errRejected
}

func (f *fakeRemote) CreateActivation(ctx context.Context, certificateID, domain string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateActivation", ""); err != nil {
		return "", err
	}
	id := f.nextID("act")
	f.acts = append(f.acts, certdeploy.Activation{ID: id, CertificateID: certificateID, Domain: domain})
	return id, nil
}

func (f *fakeRemote) UpdateActivation(ctx context.Context, id, certificateID string) error {
	f.mu.Lock()
	if err := f.enter("UpdateActivation", id); err != nil {
		f.mu.Unlock()
		return err
	}
	for i := range f.acts {
		if f.acts[i].ID == id {
			f.acts[i].CertificateID = certificateID
			f.mu.Unlock()
			f.mutated()
			return nil
		}
	}
	f.mu.Unlock()
	return errRejected
}

func (f *fakeRemote) DeleteActivation(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteActivation", id); err != nil {
		return err
	}
	for i, a := range f.acts {
		if a.ID == id {
			f.acts = append(f.acts[:i], f.acts[i+1:]...)
			return nil
		}
	}
	return errRejected
}

// fingerprintOf lets tests use the key PEM as a stand-in for its fingerprint.
func fingerprintOf(keyPEM string) string {
	return strings.TrimPrefix(keyPEM, "key:")
}
