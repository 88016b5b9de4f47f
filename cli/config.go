// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/absmach/certdeploy/pkg/errors"
	cdsdk "github.com/absmach/certdeploy/sdk"
	"github.com/pelletier/go-toml"
)

const (
	defaultConfigPath = "./config.toml"
	defCertDeployURL  = "http://localhost:9020"
)

var errReadFail = errors.New("failed to read config file")

type config struct {
	CertDeployURL   string `toml:"certdeploy_url"`
	TLSVerification bool   `toml:"tls_verification"`
	RawOutput       bool   `toml:"raw_output"`
	Limit           uint64 `toml:"limit"`
	Offset          uint64 `toml:"offset"`
}

// ParseConfig fills the values not given as flags from the TOML config file.
// A missing file at the default path is not an error.
func ParseConfig(sdkConf cdsdk.Config) (cdsdk.Config, error) {
	path := ConfigPath
	if path == "" {
		path = defaultConfigPath
	}

	var c config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &c); err != nil {
			return sdkConf, errors.Wrap(errReadFail, err)
		}
	case os.IsNotExist(err) && ConfigPath == "":
	default:
		return sdkConf, errors.Wrap(errReadFail, err)
	}

	if sdkConf.CertDeployURL == "" {
		sdkConf.CertDeployURL = c.CertDeployURL
	}
	if sdkConf.CertDeployURL == "" {
		sdkConf.CertDeployURL = defCertDeployURL
	}
	sdkConf.TLSVerification = sdkConf.TLSVerification || c.TLSVerification
	RawOutput = RawOutput || c.RawOutput
	if Limit == 0 && c.Limit != 0 {
		Limit = c.Limit
	}
	if Offset == 0 {
		Offset = c.Offset
	}

	return sdkConf, nil
}
