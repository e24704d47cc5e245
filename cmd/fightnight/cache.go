package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the event cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show age and freshness of the cached events",
		RunE:  runCacheStatus,
	})

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	return withCache(cmd.Context(), func(c *cacheDeps) error {
		record, err := c.Cache.Read(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s\nKey:     %s\n", c.Config.Cache.Backend, c.Cache.Key())
		displayCacheRecord(cmd.OutOrStdout(), record, c.Cache.IsFresh(record), c.Cache.TTL(), time.Now())
		return nil
	})
}

func displayCacheRecord(w io.Writer, record *entities.CacheRecord, fresh bool, ttl time.Duration, now time.Time) {
	if record == nil {
		fmt.Fprintln(w, "Status:  empty")
		return
	}

	state := "stale"
	if fresh {
		state = "fresh"
	}

	fmt.Fprintf(w, "Status:  %s (ttl %s)\n", state, ttl)
	fmt.Fprintf(w, "Fetched: %s (%s ago)\n",
		record.Timestamp.Local().Format(timestampLayout),
		record.Age(now).Truncate(time.Second),
	)
	fmt.Fprintf(w, "Events:  %d\nSources: %d\n", len(record.Data.Events), len(record.Data.Sources))
}
