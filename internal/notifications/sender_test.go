package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/dbtest"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/fcm"
	"go.uber.org/zap"
)

type fakeNotificationsRepo struct {
	created []*model.NotificationCreate
	err     error
}

func (f *fakeNotificationsRepo) CreateNotification(_ context.Context, _ database.Queryable, n *model.NotificationCreate) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, n)
	return int64(len(f.created)), nil
}

type fakeUsersRepo struct {
	users map[int64]*model.User
	asked []int64
}

func (f *fakeUsersRepo) GetUsersByIDs(_ context.Context, _ database.Queryable, ids []int64) ([]*model.User, error) {
	f.asked = ids
	var res []*model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakeFCM struct {
	sent   []*fcm.Message
	failed []string
	err    error
}

func (f *fakeFCM) SendMessageBatch(_ context.Context, ms []*fcm.Message) ([]string, error) {
	f.sent = append(f.sent, ms...)
	return f.failed, f.err
}

func TestSenderNotify(t *testing.T) {
	notificationsRepo := &fakeNotificationsRepo{}
	usersRepo := &fakeUsersRepo{users: map[int64]*model.User{
		1: {ID: 1, Notify: true, PushToken: "token-1"},
		2: {ID: 2, Notify: false, PushToken: "token-2"},
		3: {ID: 3, Notify: true},
	}}
	push := &fakeFCM{failed: []string{"token-1"}, err: errors.New("unavailable")}

	s := NewSender(&dbtest.PGX{}, zap.NewNop().Sugar(), notificationsRepo, usersRepo, push)

	eventID := int64(5)
	err := s.Notify(context.Background(),
		&model.NotificationCreate{UserID: 1, Kind: model.NotificationRSVP, EventID: &eventID, Text: "a"},
		&model.NotificationCreate{UserID: 2, Kind: model.NotificationRSVP, EventID: &eventID, Text: "b"},
		&model.NotificationCreate{UserID: 3, Kind: model.NotificationComment, Text: "c"},
		&model.NotificationCreate{UserID: 1, Kind: model.NotificationComment, Text: "d"},
	)
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	if len(notificationsRepo.created) != 4 {
		t.Errorf("stored %d notifications, want 4", len(notificationsRepo.created))
	}
	if len(usersRepo.asked) != 3 {
		t.Errorf("looked up users %v, want 3 distinct ids", usersRepo.asked)
	}
	if len(push.sent) != 2 {
		t.Fatalf("pushed %d messages, want 2", len(push.sent))
	}
	for _, m := range push.sent {
		if m.Token != "token-1" {
			t.Errorf("pushed to %q", m.Token)
		}
	}
}

func TestSenderWithoutPush(t *testing.T) {
	notificationsRepo := &fakeNotificationsRepo{}
	usersRepo := &fakeUsersRepo{}

	s := NewSender(&dbtest.PGX{}, zap.NewNop().Sugar(), notificationsRepo, usersRepo, nil)

	if err := s.Notify(context.Background(), &model.NotificationCreate{UserID: 1, Kind: model.NotificationFollow}); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(notificationsRepo.created) != 1 || usersRepo.asked != nil {
		t.Errorf("created %d, asked %v", len(notificationsRepo.created), usersRepo.asked)
	}
}

func TestSenderStoreError(t *testing.T) {
	s := NewSender(&dbtest.PGX{}, zap.NewNop().Sugar(), &fakeNotificationsRepo{err: errors.New("db down")}, &fakeUsersRepo{}, nil)

	if err := s.Notify(context.Background(), &model.NotificationCreate{UserID: 1}); err == nil {
		t.Error("Notify() succeeded with failing store")
	}
}
