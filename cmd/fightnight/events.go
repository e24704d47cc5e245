package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/application/handlers"
	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/services"
)

func newEventsCmd() *cobra.Command {
	var (
		promotion string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming events",
		Long: "Lists upcoming events with start times in IST. Results are cached; " +
			"use --refresh to fetch from the source even when the cache is fresh.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, promotion, refresh)
		},
	}

	cmd.Flags().StringVarP(&promotion, "promotion", "p", "", "Only show events of this promotion")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Fetch from the source even if the cache is fresh")

	return cmd
}

func runEvents(cmd *cobra.Command, promotion string, refresh bool) error {
	p, err := parsePromotionFlag(promotion)
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		ctx, cancel := withTimeout(cmd.Context(), deps.Config)
		defer cancel()

		handle := deps.Schedule.Handle
		if refresh {
			handle = deps.Schedule.HandleRefresh
		}

		result, err := handle(ctx, p)
		if err != nil {
			return err
		}

		displaySchedule(cmd.OutOrStdout(), result, deps.Config.Cache.TTL.String())
		return nil
	})
}

func parsePromotionFlag(raw string) (entities.Promotion, error) {
	if raw == "" {
		return "", nil
	}
	p, err := entities.ParsePromotion(raw)
	if err != nil {
		return "", fmt.Errorf("%w, valid promotions: %v", err, entities.PromotionNames())
	}
	return p, nil
}

func displaySchedule(w io.Writer, result *handlers.ScheduleResult, ttl string) {
	displayStatus(w, result, ttl)

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No upcoming events found.")
		return
	}

	fmt.Fprintf(w, "Showing %d events:\n\n", len(result.Events))
	for _, e := range result.Events {
		displayEvent(w, e)
	}

	if len(result.Sources) > 0 {
		fmt.Fprintln(w, "Sources:")
		for _, s := range result.Sources {
			fmt.Fprintf(w, "  - %s <%s>\n", s.Title, s.URI)
		}
	}
}

func displayStatus(w io.Writer, result *handlers.ScheduleResult, ttl string) {
	fetched := result.FetchedAt.Local().Format(timestampLayout)
	switch result.Status {
	case services.StatusDegraded:
		fmt.Fprintf(w, "Live update failed; showing cached data from %s.\n\n", fetched)
	case services.StatusCached:
		fmt.Fprintf(w, "Data cached for %s (fetched %s).\n\n", ttl, fetched)
	default:
		fmt.Fprintf(w, "Fetched %s.\n\n", fetched)
	}
}

func displayEvent(w io.Writer, e handlers.EventView) {
	fmt.Fprintf(w, "[%s] %s\n", e.Promotion, e.EventName)
	fmt.Fprintf(w, "  %s, %s\n", e.LocalDate, e.LocalTime)

	where := strings.Trim(strings.Join([]string{e.Venue, e.Location}, ", "), ", ")
	if where != "" {
		fmt.Fprintf(w, "  %s\n", where)
	}

	for _, m := range e.FightCard {
		switch {
		case m.IsMainEvent:
			fmt.Fprintf(w, "  Main event: %s vs %s", m.Fighter1, m.Fighter2)
		case m.IsCoMainEvent:
			fmt.Fprintf(w, "  Co-main:    %s vs %s", m.Fighter1, m.Fighter2)
		default:
			continue
		}
		if m.WeightClass != "" {
			fmt.Fprintf(w, " (%s)", m.WeightClass)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
