package model

import (
	"fmt"
	"strings"
	"time"
)

type Coordinates struct {
	Lat float64
	Lng float64
}

type EventCreate struct {
	CreatorID   int64
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	Capacity    int
	Tags        []string
	RepeatType  RepeatType
}

type Event struct {
	ID             int64
	Coordinates    *Coordinates
	RepeatRule     string
	NextOccurrence *time.Time
	AcceptedIDs    []int64
	InvitedIDs     []int64
	DeclinedIDs    []int64
	CreatedAt      time.Time
	EventCreate
}

func (e *Event) AcceptedCount() int {
	return len(e.AcceptedIDs)
}

// Full reports whether one more accepted attendee would exceed the capacity.
// Capacity 0 means unlimited.
func (e *Event) Full() bool {
	return e.Capacity > 0 && len(e.AcceptedIDs) >= e.Capacity
}

type RepeatType int

const (
	RepeatTypeNone RepeatType = iota
	RepeatTypeDaily
	RepeatTypeWeekly
	RepeatTypeMonthly
)

func (t RepeatType) Valid() bool {
	return t >= RepeatTypeNone && t <= RepeatTypeMonthly
}

type RSVPStatus string

const (
	RSVPNone     RSVPStatus = "none"
	RSVPInvited  RSVPStatus = "invited"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch st := RSVPStatus(strings.ToLower(s)); st {
	case RSVPNone, RSVPAccepted, RSVPDeclined:
		return st, nil
	default:
		return "", fmt.Errorf("unknown rsvp status %q", s)
	}
}

// RSVP is the attendance of one user to one event.
type RSVP struct {
	EventID       int64
	UserID        int64
	Status        RSVPStatus
	AcceptedCount int
}

type Comment struct {
	ID        int64
	EventID   int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
}

// NormalizeTags lower-cases, trims and de-duplicates tags keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}

	return res
}
