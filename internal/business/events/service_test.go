package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/dbtest"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"go.uber.org/zap"
)

type fakeStore struct {
	events   map[int64]*model.Event
	statuses map[int64]map[int64]model.RSVPStatus
	saved    map[int64][]int64
	comments []*model.Comment
	blocked  map[[2]int64]bool
	coords   map[int64]*model.Coordinates
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   map[int64]*model.Event{},
		statuses: map[int64]map[int64]model.RSVPStatus{},
		saved:    map[int64][]int64{},
		blocked:  map[[2]int64]bool{},
		coords:   map[int64]*model.Coordinates{},
	}
}

func (f *fakeStore) CreateEvent(_ context.Context, _ database.Queryable, e *model.Event) (int64, error) {
	f.nextID++
	cp := *e
	cp.ID = f.nextID
	f.events[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeStore) GetEventByID(_ context.Context, _ database.Queryable, id int64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *e
	cp.AcceptedIDs = nil
	for uid, st := range f.statuses[id] {
		if st == model.RSVPAccepted {
			cp.AcceptedIDs = append(cp.AcceptedIDs, uid)
		}
	}
	return &cp, nil
}

func (f *fakeStore) GetEventForUpdate(ctx context.Context, q database.Queryable, id int64) error {
	_, err := f.GetEventByID(ctx, q, id)
	return err
}

func (f *fakeStore) GetEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error) {
	var res []*model.Event
	for id := int64(1); id <= f.nextID; id++ {
		if e, err := f.GetEventByID(ctx, q, id); err == nil {
			res = append(res, e)
		}
	}
	return res, nil
}

func (f *fakeStore) GetEventsByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.Event, error) {
	var res []*model.Event
	for _, id := range ids {
		if e, err := f.GetEventByID(ctx, q, id); err == nil {
			res = append(res, e)
		}
	}
	return res, nil
}

func (f *fakeStore) GetEventsStartingBetween(ctx context.Context, q database.Queryable, _, _ time.Time) ([]*model.Event, error) {
	return f.GetEvents(ctx, q)
}

func (f *fakeStore) UpdateCoordinates(_ context.Context, _ database.Queryable, id int64, c *model.Coordinates) error {
	f.coords[id] = c
	f.events[id].Coordinates = c
	return nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, _ database.Queryable, id int64) error {
	delete(f.events, id)
	return nil
}

func (f *fakeStore) GetStatus(_ context.Context, _ database.Queryable, eventID, userID int64) (model.RSVPStatus, error) {
	if st, ok := f.statuses[eventID][userID]; ok {
		return st, nil
	}
	return model.RSVPNone, nil
}

func (f *fakeStore) CountAccepted(_ context.Context, _ database.Queryable, eventID int64) (int, error) {
	n := 0
	for _, st := range f.statuses[eventID] {
		if st == model.RSVPAccepted {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SetStatus(_ context.Context, _ database.Queryable, eventID, userID int64, st model.RSVPStatus) error {
	if f.statuses[eventID] == nil {
		f.statuses[eventID] = map[int64]model.RSVPStatus{}
	}
	f.statuses[eventID][userID] = st
	return nil
}

func (f *fakeStore) DeleteStatus(_ context.Context, _ database.Queryable, eventID, userID int64) error {
	delete(f.statuses[eventID], userID)
	return nil
}

func (f *fakeStore) Invite(ctx context.Context, q database.Queryable, eventID int64, userIDs []int64) error {
	for _, id := range userIDs {
		if _, ok := f.statuses[eventID][id]; !ok {
			_ = f.SetStatus(ctx, q, eventID, id, model.RSVPInvited)
		}
	}
	return nil
}

func (f *fakeStore) IsSaved(_ context.Context, _ database.Queryable, userID, eventID int64) (bool, error) {
	for _, id := range f.saved[userID] {
		if id == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetSavedEventIDs(_ context.Context, _ database.Queryable, userID int64) ([]int64, error) {
	return f.saved[userID], nil
}

func (f *fakeStore) Save(_ context.Context, _ database.Queryable, userID, eventID int64) error {
	f.saved[userID] = append([]int64{eventID}, f.saved[userID]...)
	return nil
}

func (f *fakeStore) Unsave(_ context.Context, _ database.Queryable, userID, eventID int64) error {
	ids := f.saved[userID][:0]
	for _, id := range f.saved[userID] {
		if id != eventID {
			ids = append(ids, id)
		}
	}
	f.saved[userID] = ids
	return nil
}

func (f *fakeStore) CreateComment(_ context.Context, _ database.Queryable, c *model.Comment) (*model.Comment, error) {
	cp := *c
	cp.ID = int64(len(f.comments) + 1)
	f.comments = append(f.comments, &cp)
	return &cp, nil
}

func (f *fakeStore) GetComments(_ context.Context, _ database.Queryable, eventID int64) ([]*model.Comment, error) {
	var res []*model.Comment
	for _, c := range f.comments {
		if c.EventID == eventID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeStore) IsBlockedEitherWay(_ context.Context, _ database.Queryable, a, b int64) (bool, error) {
	return f.blocked[[2]int64{a, b}] || f.blocked[[2]int64{b, a}], nil
}

type recordingNotifier struct {
	got []*model.NotificationCreate
}

func (r *recordingNotifier) Notify(_ context.Context, ns ...*model.NotificationCreate) error {
	r.got = append(r.got, ns...)
	return nil
}

type stubGeocoder struct {
	point geo.Point
	err   error
	calls int
}

func (s *stubGeocoder) Geocode(context.Context, string) (geo.Point, error) {
	s.calls++
	return s.point, s.err
}

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore, gc *stubGeocoder) (*Service, *dbtest.PGX, *recordingNotifier) {
	db := &dbtest.PGX{}
	n := &recordingNotifier{}

	var g geocoder
	if gc != nil {
		g = gc
	}

	s := NewService(db, zap.NewNop().Sugar(), Repositories{
		Events:    store,
		Attendees: store,
		Saved:     store,
		Comments:  store,
		Blocks:    store,
	}, n, g)
	s.now = func() time.Time { return now }
	return s, db, n
}

func createEvent(t *testing.T, s *Service, info model.EventCreate) *model.Event {
	t.Helper()
	e, err := s.CreateEvent(context.Background(), &info)
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	return e
}

func TestCreateEventGeocodesAndNormalizesTags(t *testing.T) {
	store := newFakeStore()
	gc := &stubGeocoder{point: geo.Point{Lat: 1, Lng: 2}}
	s, _, _ := newTestService(store, gc)

	e := createEvent(t, s, model.EventCreate{
		CreatorID: 1,
		Title:     "Linear algebra",
		Location:  "Main library",
		StartsAt:  now.Add(time.Hour),
		Tags:      []string{"Quiet", " quiet", "Indoors", ""},
	})

	if e.Coordinates == nil || e.Coordinates.Lat != 1 || e.Coordinates.Lng != 2 {
		t.Errorf("coordinates = %+v, want {1 2}", e.Coordinates)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "quiet" || e.Tags[1] != "indoors" {
		t.Errorf("tags = %v, want [quiet indoors]", e.Tags)
	}
	if e.NextOccurrence == nil || !e.NextOccurrence.Equal(now.Add(time.Hour)) {
		t.Errorf("next occurrence = %v", e.NextOccurrence)
	}
}

func TestCreateEventGeocodeFailureLeavesNoCoordinates(t *testing.T) {
	store := newFakeStore()
	s, _, _ := newTestService(store, &stubGeocoder{err: errors.New("boom")})

	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "x", Location: "nowhere", StartsAt: now})
	if e.Coordinates != nil {
		t.Errorf("coordinates = %+v, want nil", e.Coordinates)
	}
}

func TestGetEventBackfillsCoordinates(t *testing.T) {
	store := newFakeStore()
	gc := &stubGeocoder{err: errors.New("down")}
	s, _, _ := newTestService(store, gc)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "x", Location: "Cafe", StartsAt: now})

	gc.err = nil
	gc.point = geo.Point{Lat: 5, Lng: 6}

	got, err := s.GetEventByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetEventByID() error: %v", err)
	}
	if got.Coordinates == nil || got.Coordinates.Lat != 5 {
		t.Errorf("coordinates = %+v, want backfilled", got.Coordinates)
	}
	if store.coords[e.ID] == nil {
		t.Error("coordinates were not persisted")
	}
}

func TestSetRSVP(t *testing.T) {
	store := newFakeStore()
	s, db, n := newTestService(store, nil)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "Chem", StartsAt: now, Capacity: 2})
	ctx := context.Background()

	rsvp, err := s.SetRSVP(ctx, 2, e.ID, model.RSVPAccepted)
	if err != nil {
		t.Fatalf("SetRSVP(accept) error: %v", err)
	}
	if rsvp.AcceptedCount != 1 || rsvp.Status != model.RSVPAccepted {
		t.Errorf("rsvp = %+v", rsvp)
	}
	if len(n.got) != 1 || n.got[0].UserID != 1 || n.got[0].Kind != model.NotificationRSVP {
		t.Errorf("notifications = %+v, want one rsvp notification to creator", n.got)
	}

	if _, err := s.SetRSVP(ctx, 3, e.ID, model.RSVPAccepted); err != nil {
		t.Fatalf("second accept error: %v", err)
	}

	if _, err := s.SetRSVP(ctx, 4, e.ID, model.RSVPAccepted); !errors.Is(err, model.ErrEventFull) {
		t.Errorf("third accept err = %v, want ErrEventFull", err)
	}

	// Re-accepting an existing seat on a full event is not refused.
	if _, err := s.SetRSVP(ctx, 3, e.ID, model.RSVPAccepted); err != nil {
		t.Errorf("re-accept err = %v", err)
	}

	rsvp, err = s.SetRSVP(ctx, 2, e.ID, model.RSVPNone)
	if err != nil {
		t.Fatalf("SetRSVP(none) error: %v", err)
	}
	if rsvp.AcceptedCount != 1 {
		t.Errorf("accepted count = %d, want 1", rsvp.AcceptedCount)
	}

	if db.Commits != 4 || db.Rollbacks != 1 {
		t.Errorf("commits = %d rollbacks = %d, want 4 and 1", db.Commits, db.Rollbacks)
	}
}

func TestSetRSVPBlocked(t *testing.T) {
	store := newFakeStore()
	s, _, _ := newTestService(store, nil)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "Bio", StartsAt: now})
	store.blocked[[2]int64{1, 9}] = true

	if _, err := s.SetRSVP(context.Background(), 9, e.ID, model.RSVPAccepted); !errors.Is(err, model.ErrBlocked) {
		t.Errorf("err = %v, want ErrBlocked", err)
	}
	if _, err := s.AddComment(context.Background(), 9, e.ID, "hi"); !errors.Is(err, model.ErrBlocked) {
		t.Errorf("comment err = %v, want ErrBlocked", err)
	}
}

func TestSetRSVPMissingEvent(t *testing.T) {
	s, _, _ := newTestService(newFakeStore(), nil)
	if _, err := s.SetRSVP(context.Background(), 1, 99, model.RSVPAccepted); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
}

func TestDeleteEventOnlyCreator(t *testing.T) {
	store := newFakeStore()
	s, _, _ := newTestService(store, nil)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "x", StartsAt: now})

	if err := s.DeleteEvent(context.Background(), 2, e.ID); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := s.DeleteEvent(context.Background(), 1, e.ID); err != nil {
		t.Errorf("creator delete err = %v", err)
	}
	if _, ok := store.events[e.ID]; ok {
		t.Error("event still present")
	}
}

func TestInvite(t *testing.T) {
	store := newFakeStore()
	s, _, n := newTestService(store, nil)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "Physics", StartsAt: now})
	store.blocked[[2]int64{4, 1}] = true
	ctx := context.Background()

	if err := s.Invite(ctx, 2, e.ID, []int64{3}); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("non-creator invite err = %v, want ErrForbidden", err)
	}

	if err := s.Invite(ctx, 1, e.ID, []int64{1, 2, 2, 3, 4}); err != nil {
		t.Fatalf("Invite() error: %v", err)
	}

	if len(n.got) != 2 || n.got[0].UserID != 2 || n.got[1].UserID != 3 {
		t.Errorf("notifications = %+v, want invites for 2 and 3", n.got)
	}
	if store.statuses[e.ID][2] != model.RSVPInvited {
		t.Errorf("user 2 status = %q, want invited", store.statuses[e.ID][2])
	}
	if _, ok := store.statuses[e.ID][4]; ok {
		t.Error("blocked user was invited")
	}
}

func TestCommentsNotifyCreator(t *testing.T) {
	store := newFakeStore()
	s, _, n := newTestService(store, nil)
	e := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "History", StartsAt: now})
	ctx := context.Background()

	if _, err := s.AddComment(ctx, 1, e.ID, "own comment"); err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}
	if _, err := s.AddComment(ctx, 2, e.ID, "see you there"); err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}

	comments, err := s.GetComments(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetComments() error: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
	if len(n.got) != 1 || n.got[0].Kind != model.NotificationComment {
		t.Errorf("notifications = %+v, want one comment notification", n.got)
	}
}

func TestSavedEvents(t *testing.T) {
	store := newFakeStore()
	s, _, _ := newTestService(store, nil)
	a := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "a", StartsAt: now})
	b := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "b", StartsAt: now})
	ctx := context.Background()

	if err := s.SaveEvent(ctx, 5, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveEvent(ctx, 5, b.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveEvent(ctx, 5, 404); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("save missing err = %v, want ErrNoRecord", err)
	}

	events, err := s.GetSavedEvents(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].ID != b.ID || events[1].ID != a.ID {
		t.Errorf("saved events order wrong: %v", events)
	}

	if err := s.UnsaveEvent(ctx, 5, b.ID); err != nil {
		t.Fatal(err)
	}
	saved, err := s.IsSaved(ctx, 5, b.ID)
	if err != nil || saved {
		t.Errorf("IsSaved = %v, %v; want false", saved, err)
	}
}

func TestNextOccurrence(t *testing.T) {
	start := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	weekly := &model.Event{EventCreate: model.EventCreate{StartsAt: start, RepeatType: model.RepeatTypeWeekly}}
	rule, err := getRule(weekly.RepeatType, start)
	if err != nil {
		t.Fatalf("getRule() error: %v", err)
	}
	weekly.RepeatRule = rule

	next, err := nextOccurrence(weekly, now)
	if err != nil {
		t.Fatalf("nextOccurrence() error: %v", err)
	}
	want := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	if next == nil || !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}

	past := &model.Event{EventCreate: model.EventCreate{StartsAt: start}}
	if next, _ := nextOccurrence(past, now); next != nil {
		t.Errorf("past one-off next = %v, want nil", next)
	}
}

func TestGetOccurrencesBetween(t *testing.T) {
	store := newFakeStore()
	s, _, _ := newTestService(store, nil)
	ctx := context.Background()

	from := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	to := from.Add(time.Minute)

	daily := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "daily", StartsAt: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC), RepeatType: model.RepeatTypeDaily})
	createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "other time", StartsAt: time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC), RepeatType: model.RepeatTypeDaily})
	oneOff := createEvent(t, s, model.EventCreate{CreatorID: 1, Title: "one-off", StartsAt: from})

	events, err := s.GetOccurrencesBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("GetOccurrencesBetween() error: %v", err)
	}

	if len(events) != 2 || events[0].ID != daily.ID || events[1].ID != oneOff.ID {
		t.Fatalf("events = %v, want daily and one-off", events)
	}
	for _, e := range events {
		if e.NextOccurrence == nil || !e.NextOccurrence.Equal(from) {
			t.Errorf("event %d occurrence = %v, want %v", e.ID, e.NextOccurrence, from)
		}
	}
}
