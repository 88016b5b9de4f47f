// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package secrets reads the remote API credential from an OpenBao KV store.
package secrets

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/absmach/certdeploy/pkg/errors"
	"github.com/openbao/openbao/api/v2"
)

var (
	errFailedToLogin = errors.New("failed to login to OpenBao")
	errNoAuthInfo    = errors.New("no auth information from OpenBao")
	errRenewWatcher  = errors.New("unable to initialize new lifetime watcher for renewing auth token")

	// ErrMissingSecret indicates that the secret or its field does not exist.
	ErrMissingSecret = errors.New("secret not found in OpenBao")
)

// Config locates the credential inside OpenBao.
type Config struct {
	Host      string `env:"HOST"       envDefault:"http://localhost:8200"`
	AppRole   string `env:"APP_ROLE"   envDefault:""`
	AppSecret string `env:"APP_SECRET" envDefault:""`
	Namespace string `env:"NAMESPACE"  envDefault:""`
	Mount     string `env:"KV_MOUNT"   envDefault:"secret"`
	Path      string `env:"KV_PATH"    envDefault:"certdeploy/remote"`
	Field     string `env:"KV_FIELD"   envDefault:"api_key"`
}

// OpenBao logs in with AppRole credentials and reads KV v2 secrets.
type OpenBao struct {
	cfg    Config
	client *api.Client
	logger *slog.Logger

	mu     sync.Mutex
	secret *api.Secret
}

// NewOpenBao returns an OpenBao secret reader. No request is sent until the
// first read.
func NewOpenBao(cfg Config, logger *slog.Logger) (*OpenBao, error) {
	conf := api.DefaultConfig()
	conf.Address = cfg.Host

	client, err := api.NewClient(conf)
	if err != nil {
		return nil, err
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return &OpenBao{
		cfg:    cfg,
		client: client,
		logger: logger,
	}, nil
}

// APIKey returns the configured field of the configured secret.
func (ob *OpenBao) APIKey(ctx context.Context) (string, error) {
	if err := ob.loginAndRenew(ctx); err != nil {
		return "", err
	}

	secret, err := ob.client.KVv2(ob.cfg.Mount).Get(ctx, ob.cfg.Path)
	if err != nil {
		if goerrors.Is(err, api.ErrSecretNotFound) {
			return "", errors.Wrap(ErrMissingSecret, err)
		}
		return "", err
	}

	val, ok := secret.Data[ob.cfg.Field].(string)
	if !ok || val == "" {
		return "", errors.Wrap(ErrMissingSecret, fmt.Errorf("field %q of %s/%s", ob.cfg.Field, ob.cfg.Mount, ob.cfg.Path))
	}

	return val, nil
}

func (ob *OpenBao) loginAndRenew(ctx context.Context) error {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if ob.secret != nil && ob.secret.Auth != nil && ob.secret.Auth.ClientToken != "" {
		if _, err := ob.client.Auth().Token().LookupSelfWithContext(ctx); err == nil {
			return nil
		}
	}

	authData := map[string]any{
		"role_id":   ob.cfg.AppRole,
		"secret_id": ob.cfg.AppSecret,
	}

	authResp, err := ob.client.Logical().WriteWithContext(ctx, "auth/approle/login", authData)
	if err != nil {
		return errors.Wrap(errFailedToLogin, err)
	}

	if authResp == nil || authResp.Auth == nil {
		return errNoAuthInfo
	}

	ob.secret = authResp
	ob.client.SetToken(authResp.Auth.ClientToken)

	if authResp.Auth.Renewable {
		watcher, err := ob.client.NewLifetimeWatcher(&api.LifetimeWatcherInput{
			Secret: authResp,
		})
		if err != nil {
			return errors.Wrap(errRenewWatcher, err)
		}

		go ob.renewToken(watcher)
	}

	return nil
}

func (ob *OpenBao) renewToken(watcher *api.LifetimeWatcher) {
	defer watcher.Stop()

	watcher.Start()
	for {
		select {
		case err := <-watcher.DoneCh():
			if err != nil {
				ob.logger.Error("token renewal failed", "error", err)
			}
			return
		case renewal := <-watcher.RenewCh():
			ob.logger.Info("token renewed successfully", "lease_duration", renewal.Secret.LeaseDuration)
		}
	}
}
