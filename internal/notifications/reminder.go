package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type eventsService interface {
	GetOccurrencesBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
}

type notifier interface {
	Notify(ctx context.Context, ns ...*model.NotificationCreate) error
}

// Reminder notifies accepted attendees shortly before a session starts.
type Reminder struct {
	logger   *zap.SugaredLogger
	events   eventsService
	notifier notifier
	lead     time.Duration
	now      func() time.Time
	// next returns the tick after t; each run covers occurrences up to it.
	next func(t time.Time) time.Time
}

func NewReminder(logger *zap.SugaredLogger, events eventsService, notifier notifier, lead time.Duration) *Reminder {
	return &Reminder{
		logger:   logger,
		events:   events,
		notifier: notifier,
		lead:     lead,
		now:      time.Now,
		next:     func(t time.Time) time.Time { return t.Add(time.Minute) },
	}
}

// Start runs the reminder job on the cron schedule until closer fires.
func (r *Reminder) Start(ctx context.Context, schedule string) error {
	sched, err := r.setSchedule(schedule)
	if err != nil {
		return err
	}

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() {
		if err := r.run(ctx); err != nil {
			r.logger.Errorw("failed to send reminders", "err", err)
		}
	}))

	c.Start()
	closer.Bind(func() {
		<-c.Stop().Done()
	})

	return nil
}

// setSchedule makes every run cover the time until the following tick, so
// occurrences are neither skipped nor repeated whatever the interval.
func (r *Reminder) setSchedule(schedule string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}

	r.next = sched.Next

	return sched, nil
}

func (r *Reminder) run(ctx context.Context) error {
	tick := r.now().Truncate(time.Minute)
	from := tick.Add(r.lead)
	to := r.next(tick).Add(r.lead)

	r.logger.Debugw("sending reminders", "from", from, "to", to)

	events, err := r.events.GetOccurrencesBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	return r.notifier.Notify(ctx, reminders(events)...)
}

func reminders(events []*model.Event) []*model.NotificationCreate {
	var res []*model.NotificationCreate
	for _, e := range events {
		eventID := e.ID
		for _, userID := range e.AcceptedIDs {
			res = append(res, &model.NotificationCreate{
				UserID:  userID,
				Kind:    model.NotificationReminder,
				EventID: &eventID,
				Text:    fmt.Sprintf("%s starts at %s", e.Title, occurrence(e).Format(time.Kitchen)),
			})
		}
	}

	return res
}

func occurrence(e *model.Event) time.Time {
	if e.NextOccurrence != nil {
		return *e.NextOccurrence
	}
	return e.StartsAt
}
