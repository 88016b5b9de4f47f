// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/absmach/certdeploy/cli"
	"github.com/absmach/certdeploy/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	defer func() {
		cli.ConfigPath = ""
		cli.RawOutput = false
		cli.Limit = 10
		cli.Offset = 0
	}()

	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte(`certdeploy_url = "https://deploy.example.com"
tls_verification = true
raw_output = true
limit = 25
offset = 5
`), 0o600))
	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte(`limit = "many"`), 0o600))

	cases := []struct {
		desc     string
		path     string
		conf     sdk.Config
		limit    uint64
		expected sdk.Config
		expLimit uint64
		offset   uint64
		raw      bool
		err      bool
	}{
		{
			desc:     "read custom config",
			path:     custom,
			expected: sdk.Config{CertDeployURL: "https://deploy.example.com", TLSVerification: true},
			expLimit: 25,
			offset:   5,
			raw:      true,
		},
		{
			desc:     "flags override config",
			path:     custom,
			conf:     sdk.Config{CertDeployURL: "http://flag:9020"},
			limit:    50,
			expected: sdk.Config{CertDeployURL: "http://flag:9020", TLSVerification: true},
			expLimit: 50,
			offset:   5,
			raw:      true,
		},
		{
			desc:     "missing default config",
			path:     "",
			limit:    10,
			expected: sdk.Config{CertDeployURL: "http://localhost:9020"},
			expLimit: 10,
		},
		{
			desc: "missing explicit config",
			path: filepath.Join(dir, "missing.toml"),
			err:  true,
		},
		{
			desc: "malformed config",
			path: broken,
			err:  true,
		},
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cli.ConfigPath = tc.path
			cli.Limit = tc.limit
			cli.Offset = 0
			cli.RawOutput = false

			conf, err := cli.ParseConfig(tc.conf)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, conf)
			assert.Equal(t, tc.expLimit, cli.Limit)
			assert.Equal(t, tc.offset, cli.Offset)
			assert.Equal(t, tc.raw, cli.RawOutput)
		})
	}
}
