// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/gradetex/internal/transcript"
)

func newTitleCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "title CAMPUS SESSION SUBJECT CODE",
		Short:   "Resolve a single course title",
		Example: "  transcript title UBCV 2020W MATH 200",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			context, cancel := context.WithTimeout(cmd.Context(), global.timeout)
			defer cancel()

			env, err := setup(context, cmd, global)
			if err != nil {
				return err
			}
			defer env.close()

			lookup, err := env.service.LookupTitle(context, transcript.TitleQuery{
				Campus:  args[0],
				Session: args[1],
				Subject: args[2],
				Code:    args[3],
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", lookup.CacheKey, lookup.Title, lookup.Source)
			return nil
		},
	}
}
