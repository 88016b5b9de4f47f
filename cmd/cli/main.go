// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains cli main function to run the cli.
package main

import (
	"log"

	"github.com/absmach/certdeploy/cli"
	"github.com/absmach/certdeploy/sdk"
	"github.com/spf13/cobra"
)

func main() {
	sdkConf := sdk.Config{
		MsgContentType: sdk.CTJSON,
	}

	rootCmd := &cobra.Command{
		Use:   "certdeploy-cli",
		Short: "Deploy certificates to the remote TLS service",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cliConf, err := cli.ParseConfig(sdkConf)
			if err != nil {
				log.Fatalf("Failed to parse config: %s", err)
			}
			if cliConf.MsgContentType == "" {
				cliConf.MsgContentType = sdk.CTJSON
			}
			cli.SetSDK(sdk.NewSDK(cliConf))
		},
	}
	rootCmd.AddCommand(cli.NewDeploymentsCmd())

	flags := cli.SetFlags(rootCmd).PersistentFlags()
	flags.StringVarP(&sdkConf.CertDeployURL, "certdeploy-url", "s", sdkConf.CertDeployURL, "Certdeploy service URL")
	flags.BoolVarP(&sdkConf.TLSVerification, "insecure", "i", sdkConf.TLSVerification, "Do not check for TLS cert")
	flags.BoolVarP(&sdkConf.CurlFlag, "curl", "x", false, "Convert HTTP request to cURL command")
	flags.StringVarP(&cli.ConfigPath, "config", "c", cli.ConfigPath, "Config path")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
