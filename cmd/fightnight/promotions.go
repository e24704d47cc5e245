package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/domain/services"
)

func newPromotionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promotions",
		Short: "Show upcoming event counts per promotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				ctx, cancel := withTimeout(cmd.Context(), deps.Config)
				defer cancel()

				result, err := deps.Schedule.Handle(ctx, "")
				if err != nil {
					return err
				}

				displayStatus(cmd.OutOrStdout(), result, deps.Config.Cache.TTL.String())
				displayPromotionCounts(cmd.OutOrStdout(), result.Promotions)
				return nil
			})
		},
	}
}

func displayPromotionCounts(w io.Writer, counts []services.PromotionCount) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "No upcoming events found.")
		return
	}

	total := 0
	for _, c := range counts {
		fmt.Fprintf(w, "%-18s %d\n", c.Promotion, c.Count)
		total += c.Count
	}
	fmt.Fprintf(w, "%-18s %d\n", "Total", total)
}
