// Package calendar renders fight events as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/services"
)

const (
	productID = "-//fightnight//schedule//EN"
	calName   = "Fight Night"

	// EventDuration is the assumed length of a main card; sources only give a start.
	EventDuration = 4 * time.Hour
)

// eventNamespace scopes generated UIDs so re-exports keep stable identities.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://fightnight.local/events"))

// Encode writes events as a VCALENDAR with one VEVENT per event.
// stamp is used for DTSTAMP so output is reproducible.
func Encode(w io.Writer, events []entities.FightEvent, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calName)

	for _, e := range events {
		ve := cal.AddEvent(EventUID(e))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetStartAt(e.Date.UTC())
		ve.SetEndAt(e.Date.UTC().Add(EventDuration))
		ve.SetSummary(fmt.Sprintf("%s: %s", e.Promotion, e.EventName))
		if loc := location(e); loc != "" {
			ve.SetLocation(loc)
		}
		ve.SetDescription(description(e))
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("serializing calendar: %w", err)
	}
	return nil
}

// EventUID derives a stable UID from promotion, name and start instant.
func EventUID(e entities.FightEvent) string {
	key := fmt.Sprintf("%s|%s|%d", e.Promotion, e.EventName, e.Date.Unix())
	return uuid.NewSHA1(eventNamespace, []byte(key)).String() + "@fightnight"
}

func location(e entities.FightEvent) string {
	parts := make([]string, 0, 2)
	if e.Venue != "" {
		parts = append(parts, e.Venue)
	}
	if e.Location != "" {
		parts = append(parts, e.Location)
	}
	return strings.Join(parts, ", ")
}

func description(e entities.FightEvent) string {
	var b strings.Builder

	local, err := services.ToIST(e.Date)
	if err == nil {
		fmt.Fprintf(&b, "Main card: %s %s\n", local.Date, local.Time)
	}

	for _, m := range e.FightCard {
		switch {
		case m.IsMainEvent:
			b.WriteString("Main event: ")
		case m.IsCoMainEvent:
			b.WriteString("Co-main: ")
		}
		fmt.Fprintf(&b, "%s vs %s", m.Fighter1, m.Fighter2)
		if m.WeightClass != "" {
			fmt.Fprintf(&b, " (%s)", m.WeightClass)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
