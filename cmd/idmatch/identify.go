// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/idmatch/idmatch-mcp/internal/verify"
)

func runIdentify(cmd *cobra.Command, args []string) error {
	srcs, err := readSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	svc, err := newService("", nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	submissions := make([]verify.Submission, 0, len(srcs))
	for _, src := range srcs {
		sub, err := svc.Identify(ctx, src)
		if errors.Is(err, context.Canceled) {
			return err
		}
		if err != nil {
			// Content no reader understands is reported, not fatal.
			sub.Documents = []verify.DocumentResult{{
				ID:     sub.ID,
				Status: verify.StatusUnreadable,
				Error:  err.Error(),
			}}
		}
		submissions = append(submissions, sub)
	}
	return writeOutput(cmd.OutOrStdout(), cfg.Output, submissions)
}
