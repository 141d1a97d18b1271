package events

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/teambition/rrule-go"
)

func getRule(t model.RepeatType, from time.Time) (string, error) {
	var freq rrule.Frequency

	switch t {
	case model.RepeatTypeNone:
		return "", nil
	case model.RepeatTypeDaily:
		freq = rrule.DAILY
	case model.RepeatTypeWeekly:
		freq = rrule.WEEKLY
	case model.RepeatTypeMonthly:
		freq = rrule.MONTHLY
	default:
		return "", fmt.Errorf("unknown repeat type: %v", t)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  from.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return rule.String(), nil
}

func parseRule(e *model.Event) (*rrule.RRule, error) {
	rOption, err := rrule.StrToROption(e.RepeatRule)
	if err != nil {
		return nil, fmt.Errorf("parse repeat rule %q: %w", e.RepeatRule, err)
	}
	rOption.Dtstart = e.StartsAt.UTC()

	rule, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, fmt.Errorf("make rule: %w", err)
	}

	return rule, nil
}

// nextOccurrence is the first start at or after now; nil once a one-off session has started.
func nextOccurrence(e *model.Event, now time.Time) (*time.Time, error) {
	if e.RepeatRule == "" {
		if e.StartsAt.Before(now) {
			return nil, nil
		}
		start := e.StartsAt
		return &start, nil
	}

	rule, err := parseRule(e)
	if err != nil {
		return nil, err
	}

	next := rule.After(now, true)
	if next.IsZero() {
		return nil, nil
	}

	return &next, nil
}

// firstOccurrenceIn returns the first start inside [from, to).
func firstOccurrenceIn(e *model.Event, from, to time.Time) (*time.Time, error) {
	if e.RepeatRule == "" {
		if e.StartsAt.Before(from) || !e.StartsAt.Before(to) {
			return nil, nil
		}
		start := e.StartsAt
		return &start, nil
	}

	rule, err := parseRule(e)
	if err != nil {
		return nil, err
	}

	repeats := rule.Between(from, to.Add(-time.Nanosecond), true)
	if len(repeats) == 0 {
		return nil, nil
	}

	return &repeats[0], nil
}
