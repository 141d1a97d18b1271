package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/client"
	"go.uber.org/zap"
)

const DefaultReconcileDelay = time.Second

var (
	ErrInFlight     = errors.New("action already in flight")
	ErrClosed       = errors.New("controller closed")
	ErrUnknownEvent = errors.New("unknown event")
)

type Action string

const (
	ActionRSVP Action = "rsvp"
	ActionSave Action = "save"
)

// State is the lifecycle of one (event, action) pair:
// idle -> pending -> reconciling -> idle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReconciling:
		return "reconciling"
	default:
		return "idle"
	}
}

// AlertFunc is told about every mutation the backend rejected.
type AlertFunc func(action Action, eventID int64, err error)

type key struct {
	eventID int64
	action  Action
}

// Controller applies RSVP and save toggles to the store before the backend
// confirms them, rolls them back on failure and re-reads the server state a
// fixed delay after success.
type Controller struct {
	store          *Store
	backend        Backend
	logger         *zap.SugaredLogger
	alert          AlertFunc
	reconcileDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	states map[key]State
	timers map[key]*reconcileTimer
}

type reconcileTimer struct {
	t *time.Timer
}

type Option func(c *Controller)

func WithReconcileDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.reconcileDelay = d
	}
}

func WithAlert(fn AlertFunc) Option {
	return func(c *Controller) {
		c.alert = fn
	}
}

func NewController(store *Store, backend Backend, logger *zap.SugaredLogger, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		store:          store,
		backend:        backend,
		logger:         logger,
		reconcileDelay: DefaultReconcileDelay,
		ctx:            ctx,
		cancel:         cancel,
		states:         make(map[key]State),
		timers:         make(map[key]*reconcileTimer),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) State(eventID int64, action Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[key{eventID, action}]
}

// ToggleRSVP accepts the event when the user has not RSVPed and withdraws otherwise.
func (c *Controller) ToggleRSVP(ctx context.Context, eventID int64) error {
	return c.toggle(ctx, key{eventID, ActionRSVP})
}

func (c *Controller) ToggleSave(ctx context.Context, eventID int64) error {
	return c.toggle(ctx, key{eventID, ActionSave})
}

func (c *Controller) toggle(ctx context.Context, k key) error {
	if err := c.begin(k); err != nil {
		return err
	}
	done := sync.OnceFunc(c.wg.Done)
	defer done()

	var snapshot Event
	if !c.store.Update(k.eventID, func(e *Event) {
		snapshot = e.clone()
		flip(e, k.action)
	}) {
		c.reset(k)
		return ErrUnknownEvent
	}

	mctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	err := c.mutate(mctx, k, &snapshot)

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if err == nil {
		c.states[k] = StateReconciling
		c.scheduleReconcile(k)
		c.mu.Unlock()
		return nil
	}

	c.store.Update(k.eventID, func(e *Event) {
		restore(e, &snapshot, k.action)
	})
	delete(c.states, k)
	c.mu.Unlock()
	done()

	// The alert holds no lock and is not waited on by Close; it may call
	// back into the controller.
	c.logger.Warnw("toggle rejected, rolled back", "event_id", k.eventID, "action", k.action, "err", err)
	if c.alert != nil {
		c.alert(k.action, k.eventID, err)
	}

	return fmt.Errorf("%s event %d: %w", k.action, k.eventID, err)
}

// begin moves k to pending. A reconcile scheduled for k is dropped since a
// new one follows the next acknowledgement.
func (c *Controller) begin(k key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if c.states[k] == StatePending {
		return ErrInFlight
	}

	if rt, ok := c.timers[k]; ok {
		if rt.t.Stop() {
			c.wg.Done()
		}
		delete(c.timers, k)
	}

	c.states[k] = StatePending
	c.wg.Add(1)

	return nil
}

func (c *Controller) reset(k key) {
	c.mu.Lock()
	delete(c.states, k)
	c.mu.Unlock()
}

func (c *Controller) mutate(ctx context.Context, k key, before *Event) error {
	switch k.action {
	case ActionRSVP:
		if before.IsRSVPed {
			_, err := c.backend.ClearRSVP(ctx, k.eventID)
			return err
		}
		_, err := c.backend.SetRSVP(ctx, k.eventID, client.RSVPAccepted)
		return err
	case ActionSave:
		if before.IsSaved {
			return c.backend.UnsaveEvent(ctx, k.eventID)
		}
		return c.backend.SaveEvent(ctx, k.eventID)
	default:
		return fmt.Errorf("unknown action %q", k.action)
	}
}

// scheduleReconcile must be called with c.mu held.
func (c *Controller) scheduleReconcile(k key) {
	c.wg.Add(1)

	rt := &reconcileTimer{}
	rt.t = time.AfterFunc(c.reconcileDelay, func() {
		defer c.wg.Done()
		c.reconcile(k, rt)
	})
	c.timers[k] = rt
}

func (c *Controller) reconcile(k key, rt *reconcileTimer) {
	c.mu.Lock()
	if c.closed || c.timers[k] != rt {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	apply, err := c.fetch(c.ctx, k)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.timers[k] != rt {
		return
	}
	delete(c.timers, k)
	delete(c.states, k)

	if err != nil {
		c.logger.Warnw("failed to reconcile event", "event_id", k.eventID, "action", k.action, "err", err)
		return
	}

	c.store.Update(k.eventID, apply)
}

// fetch reads the server state owned by k's action.
func (c *Controller) fetch(ctx context.Context, k key) (func(e *Event), error) {
	switch k.action {
	case ActionRSVP:
		rsvp, err := c.backend.GetRSVP(ctx, k.eventID)
		if err != nil {
			return nil, err
		}
		return func(e *Event) {
			e.IsRSVPed = rsvp.Status == client.RSVPAccepted
			e.AcceptedCount = rsvp.AcceptedCount
		}, nil
	case ActionSave:
		saved, err := c.backend.IsSaved(ctx, k.eventID)
		if err != nil {
			return nil, err
		}
		return func(e *Event) {
			e.IsSaved = saved
		}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", k.action)
	}
}

// Close cancels in-flight mutations and scheduled reconciles and waits for
// them to return. The store is not written after Close.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	for k, rt := range c.timers {
		if rt.t.Stop() {
			c.wg.Done()
		}
		delete(c.timers, k)
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func flip(e *Event, action Action) {
	switch action {
	case ActionRSVP:
		if e.IsRSVPed {
			e.AcceptedCount--
		} else {
			e.AcceptedCount++
		}
		e.IsRSVPed = !e.IsRSVPed
	case ActionSave:
		e.IsSaved = !e.IsSaved
	}
}

func restore(e *Event, snapshot *Event, action Action) {
	switch action {
	case ActionRSVP:
		e.IsRSVPed = snapshot.IsRSVPed
		e.AcceptedCount = snapshot.AcceptedCount
	case ActionSave:
		e.IsSaved = snapshot.IsSaved
	}
}
