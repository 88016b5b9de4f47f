// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"

	cdsdk "github.com/absmach/certdeploy/sdk"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

var (
	// Limit query parameter.
	Limit uint64 = 10
	// Offset query parameter.
	Offset uint64 = 0
	// CommonName common name parameter.
	CommonName string = ""
	// ConfigPath config path parameter.
	ConfigPath string = ""
	// RawOutput raw output mode.
	RawOutput bool = false
)

func logJSONCmd(cmd cobra.Command, iList ...any) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		if RawOutput {
			fmt.Fprintln(cmd.OutOrStdout(), string(m))
			continue
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprintf(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n"), u)
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logWarningCmd(cmd cobra.Command, dep cdsdk.Deployment) {
	boldYellow := color.New(color.FgYellow, color.Bold)
	boldYellow.Fprintf(cmd.ErrOrStderr(), "warning: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", color.YellowString("%s deployed with %d unresolved step(s)", dep.CommonName, len(dep.Errors)))
	for _, e := range dep.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s: %s\n", e.Stage, e.ResourceID, e.Message)
	}
	fmt.Fprintln(cmd.ErrOrStderr())
}

// SetFlags registers the output and paging flags shared by all commands.
func SetFlags(cmd *cobra.Command) *cobra.Command {
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&RawOutput, "raw", "r", RawOutput, "Enables raw output mode for easier parsing of output")
	flags.Uint64VarP(&Limit, "limit", "l", 10, "Limit query parameter")
	flags.Uint64VarP(&Offset, "offset", "o", 0, "Offset query parameter")
	flags.StringVarP(&CommonName, "name", "n", "", "Common name of the certificate")

	return cmd
}
