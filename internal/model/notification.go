package model

import "time"

type NotificationKind string

const (
	NotificationRSVP     NotificationKind = "rsvp"
	NotificationComment  NotificationKind = "comment"
	NotificationInvite   NotificationKind = "invite"
	NotificationReminder NotificationKind = "reminder"
	NotificationFollow   NotificationKind = "follow"
)

type NotificationCreate struct {
	UserID  int64
	Kind    NotificationKind
	EventID *int64
	ActorID *int64
	Text    string
}

type Notification struct {
	ID        int64
	Read      bool
	CreatedAt time.Time
	NotificationCreate
}
