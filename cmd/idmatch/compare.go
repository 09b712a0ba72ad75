// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/spf13/cobra"
)

func runCompare(cmd *cobra.Command, args []string) error {
	srcs, err := readSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	svc, err := newService(comparePolicy, nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := svc.Verify(ctx, srcs)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), cfg.Output, report)
}
