// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"encoding/json"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/errors"
	"github.com/mitchellh/mapstructure"
)

const (
	typePrivateKey  = "tls_private_key"
	typeCertificate = "tls_certificate"
	typeActivation  = "tls_activation"
	typeDomain      = "tls_domain"

	relCertificate = "tls_certificate"
	relDomain      = "tls_domain"
)

type document struct {
	Data resource `json:"data"`
}

type listDocument struct {
	Data []resource `json:"data"`
}

type resource struct {
	ID            string                  `json:"id,omitempty"`
	Type          string                  `json:"type"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

// relationship data is a single identifier or, for to-many links, a list.
type relationship struct {
	Data json.RawMessage `json:"data"`
}

type identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func toOne(typ, id string) relationship {
	data, _ := json.Marshal(identifier{Type: typ, ID: id})
	return relationship{Data: data}
}

// firstID returns the id of a to-one link or of the first entry of a to-many link.
func (r relationship) firstID() string {
	var one identifier
	if err := json.Unmarshal(r.Data, &one); err == nil {
		return one.ID
	}
	var many []identifier
	if err := json.Unmarshal(r.Data, &many); err == nil && len(many) > 0 {
		return many[0].ID
	}
	return ""
}

type keyAttributes struct {
	Name          string    `mapstructure:"name"`
	PublicKeySHA1 string    `mapstructure:"public_key_sha1"`
	CreatedAt     time.Time `mapstructure:"created_at"`
}

type certificateAttributes struct {
	Name      string    `mapstructure:"name"`
	CreatedAt time.Time `mapstructure:"created_at"`
}

func decodeAttributes(attrs map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(attrs); err != nil {
		return errors.Wrap(errMalformedResponse, err)
	}
	return nil
}

func (r resource) privateKey() (certdeploy.PrivateKey, error) {
	var attrs keyAttributes
	if err := decodeAttributes(r.Attributes, &attrs); err != nil {
		return certdeploy.PrivateKey{}, err
	}
	return certdeploy.PrivateKey{
		ID:                   r.ID,
		Name:                 attrs.Name,
		PublicKeyFingerprint: attrs.PublicKeySHA1,
		CreatedAt:            attrs.CreatedAt,
	}, nil
}

func (r resource) certificate() (certdeploy.Certificate, error) {
	var attrs certificateAttributes
	if err := decodeAttributes(r.Attributes, &attrs); err != nil {
		return certdeploy.Certificate{}, err
	}
	return certdeploy.Certificate{
		ID:        r.ID,
		Name:      attrs.Name,
		CreatedAt: attrs.CreatedAt,
	}, nil
}

func (r resource) activation() certdeploy.Activation {
	return certdeploy.Activation{
		ID:            r.ID,
		CertificateID: r.Relationships[relCertificate].firstID(),
		Domain:        r.Relationships[relDomain].firstID(),
	}
}
