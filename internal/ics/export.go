// Package ics renders saved study sessions as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	ical "github.com/arran4/golang-ical"
)

const productID = "-//studyspot//saved sessions//EN"

// Export writes one VEVENT per event. Repeating events carry their RRULE.
func Export(w io.Writer, events []*model.Event, domain string, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Saved study sessions")

	for _, e := range events {
		ve := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, domain))
		ve.SetDtStampTime(now)
		ve.SetCreatedTime(e.CreatedAt)
		ve.SetStartAt(e.StartsAt)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Coordinates != nil {
			ve.SetProperty(ical.ComponentPropertyGeo, fmt.Sprintf("%f;%f", e.Coordinates.Lat, e.Coordinates.Lng))
		}
		if len(e.Tags) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.Join(e.Tags, ","))
		}
		if rule := recurrence(e.RepeatRule); rule != "" {
			ve.AddRrule(rule)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}

	return nil
}

// recurrence strips the DTSTART line and RRULE prefix from a stored rule.
func recurrence(stored string) string {
	for _, line := range strings.Split(stored, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "DTSTART") {
			continue
		}
		return strings.TrimPrefix(line, "RRULE:")
	}

	return ""
}
