package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/application/handlers"
	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/infrastructure/calendar"
)

type exportFlags struct {
	format    string
	output    string
	promotion string
}

type exporter struct {
	format string
	output string
	stamp  time.Time
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export upcoming events to file",
		Long:  "Exports upcoming events to JSON, CSV, markdown, or iCalendar format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown, ics)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.promotion, "promotion", "p", "", "Only export events of this promotion")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	p, err := parsePromotionFlag(flags.promotion)
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		ctx, cancel := withTimeout(cmd.Context(), deps.Config)
		defer cancel()

		result, err := deps.Schedule.Handle(ctx, p)
		if err != nil {
			return err
		}

		if len(result.Events) == 0 {
			return fmt.Errorf("no events found to export")
		}

		e := &exporter{
			format: flags.format,
			output: flags.output,
			stamp:  result.FetchedAt,
		}
		return e.export(cmd.OutOrStdout(), result.Events)
	})
}

func (e *exporter) export(stdout io.Writer, events []handlers.EventView) (err error) {
	w := stdout
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := e.formatEvents(w, events); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Fprintf(stdout, "Exported %d events to %s\n", len(events), e.output)
	}

	return nil
}

func (e *exporter) formatEvents(w io.Writer, events []handlers.EventView) error {
	switch e.format {
	case "json":
		return formatJSON(w, events)
	case "csv":
		return formatCSV(w, events)
	case "markdown":
		return formatMarkdown(w, events)
	case "ics":
		return formatICS(w, events, e.stamp)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

func formatJSON(w io.Writer, events []handlers.EventView) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(events)
}

func formatCSV(w io.Writer, events []handlers.EventView) error {
	writer := csv.NewWriter(w)

	header := []string{"promotion", "event", "date_utc", "date_ist", "time_ist", "venue", "location", "main_event", "co_main_event"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			string(e.Promotion),
			e.EventName,
			e.Date.UTC().Format(time.RFC3339),
			e.LocalDate,
			e.LocalTime,
			e.Venue,
			e.Location,
			mainEventLabel(e.FightEvent),
			matchupLabel(e.FightCard, func(m entities.Matchup) bool { return m.IsCoMainEvent }),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, events []handlers.EventView) error {
	if _, err := fmt.Fprintf(w, "# Upcoming Events\n\nTotal: %d events\n\n", len(events)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Promotion | Event | Date (IST) | Time (IST) | Location | Main Event |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|-----------|-------|------------|------------|----------|------------|\n"); err != nil {
		return err
	}

	for _, e := range events {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			e.Promotion,
			escapeMarkdown(e.EventName),
			e.LocalDate,
			e.LocalTime,
			escapeMarkdown(e.Location),
			escapeMarkdown(mainEventLabel(e.FightEvent)),
		); err != nil {
			return err
		}
	}

	return nil
}

func formatICS(w io.Writer, events []handlers.EventView, stamp time.Time) error {
	raw := make([]entities.FightEvent, 0, len(events))
	for _, e := range events {
		raw = append(raw, e.FightEvent)
	}
	return calendar.Encode(w, raw, stamp)
}

func mainEventLabel(e entities.FightEvent) string {
	if m, ok := e.MainEvent(); ok {
		return m.Fighter1 + " vs " + m.Fighter2
	}
	return ""
}

// matchupLabel renders the first matchup satisfying match as "A vs B".
func matchupLabel(card []entities.Matchup, match func(entities.Matchup) bool) string {
	for _, m := range card {
		if match(m) {
			return m.Fighter1 + " vs " + m.Fighter2
		}
	}
	return ""
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
