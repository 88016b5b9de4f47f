// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"strings"

	"github.com/absmach/certdeploy/pkg/errors"
	cdsdk "github.com/absmach/certdeploy/sdk"
	"github.com/spf13/cobra"
)

const all = "all"

var errInvalidPair = errors.New("expected <cert_file>:<key_file>[:<chain_file>]")

// Keep SDK handle in global var.
var sdk cdsdk.SDK

func SetSDK(s cdsdk.SDK) {
	sdk = s
}

var cmdDeployments = []cobra.Command{
	{
		Use:   "deploy <cert_file> <key_file> [chain_file]",
		Short: "Deploy certificate",
		Long: `Deploys a PEM certificate and private key to the remote TLS service.
The common name and key fingerprint are derived from the files unless --name is set.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 || len(args) > 3 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			cert, err := readCertificate(args[0], args[1], optional(args, 2))
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			cert.CommonName = CommonName

			dep, sdkerr := sdk.Deploy(cert)
			if sdkerr != nil {
				if dep.ID != "" {
					logJSONCmd(*cmd, dep)
				}
				logErrorCmd(*cmd, sdkerr)
				return
			}
			logJSONCmd(*cmd, dep)
			if dep.Warnings {
				logWarningCmd(*cmd, dep)
			}
		},
	},
	{
		Use:   "batch <cert_file>:<key_file>[:<chain_file>] ...",
		Short: "Deploy certificates",
		Long:  `Deploys several certificates with distinct common names in one request.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			certs := make([]cdsdk.Certificate, 0, len(args))
			for _, arg := range args {
				parts := strings.Split(arg, ":")
				if len(parts) < 2 || len(parts) > 3 {
					logErrorCmd(*cmd, errors.Wrap(errInvalidPair, errors.New(arg)))
					return
				}
				cert, err := readCertificate(parts[0], parts[1], optional(parts, 2))
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				certs = append(certs, cert)
			}

			deps, err := sdk.DeployBatch(certs)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, deps)
		},
	},
	{
		Use:   "get [all | <report_id>]",
		Short: "Get deployment reports",
		Long:  `Gets a deployment report by ID or lists all reports, optionally filtered by --name.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			if args[0] == all {
				pm := cdsdk.PageMetadata{
					Limit:      Limit,
					Offset:     Offset,
					CommonName: CommonName,
				}
				page, err := sdk.ListDeployments(pm)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logJSONCmd(*cmd, page)
				return
			}
			dep, err := sdk.ViewDeployment(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, dep)
		},
	},
}

// NewDeploymentsCmd returns deployments command.
func NewDeploymentsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "deployments [deploy | batch | get]",
		Short: "Certificate deployments",
		Long:  `Certificate deployments: deploy one, deploy a batch, get reports.`,
	}

	for i := range cmdDeployments {
		cmd.AddCommand(&cmdDeployments[i])
	}

	return &cmd
}

func readCertificate(certFile, keyFile, chainFile string) (cdsdk.Certificate, error) {
	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return cdsdk.Certificate{}, err
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return cdsdk.Certificate{}, err
	}
	cert := cdsdk.Certificate{
		Certificate: string(certPEM),
		PrivateKey:  string(keyPEM),
	}
	if chainFile != "" {
		chainPEM, err := os.ReadFile(chainFile)
		if err != nil {
			return cdsdk.Certificate{}, err
		}
		cert.Chain = string(chainPEM)
	}
	return cert, nil
}

func optional(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
