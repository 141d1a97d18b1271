package social

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/dbtest"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"go.uber.org/zap"
)

type fakeRepo struct {
	users     map[int64]*model.User
	follows   map[[2]int64]bool
	blocks    map[[2]int64]bool
	notes     []*model.Notification
	createErr error
}

func newFakeRepo(ids ...int64) *fakeRepo {
	f := &fakeRepo{
		users:   map[int64]*model.User{},
		follows: map[[2]int64]bool{},
		blocks:  map[[2]int64]bool{},
	}
	for _, id := range ids {
		f.users[id] = &model.User{ID: id, Notify: true}
	}
	return f
}

func (f *fakeRepo) CreateUser(_ context.Context, _ database.Queryable, u *model.UserCreate) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := int64(len(f.users) + 1)
	f.users[id] = &model.User{ID: id, Notify: true, UserCreate: *u}
	return id, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, _ database.Queryable, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error) {
	var res []*model.User
	for _, id := range ids {
		if u, err := f.GetUserByID(ctx, q, id); err == nil {
			res = append(res, u)
		}
	}
	return res, nil
}

func (f *fakeRepo) SearchUsers(ctx context.Context, q database.Queryable, _ model.UserSearchFilter) ([]*model.User, error) {
	var ids []int64
	for id := int64(1); id <= int64(len(f.users)); id++ {
		ids = append(ids, id)
	}
	return f.GetUsersByIDs(ctx, q, ids)
}

func (f *fakeRepo) UpdateUser(_ context.Context, _ database.Queryable, id int64, upd *model.UserUpdate) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrNoRecord
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Notify != nil {
		u.Notify = *upd.Notify
	}
	return nil
}

func (f *fakeRepo) UpdateUserPushToken(_ context.Context, _ database.Queryable, id int64, token string) error {
	f.users[id].PushToken = token
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, _ database.Queryable, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) Follow(_ context.Context, _ database.Queryable, a, b int64) error {
	f.follows[[2]int64{a, b}] = true
	return nil
}

func (f *fakeRepo) Unfollow(_ context.Context, _ database.Queryable, a, b int64) error {
	delete(f.follows, [2]int64{a, b})
	return nil
}

func (f *fakeRepo) GetFollowerIDs(_ context.Context, _ database.Queryable, userID int64) ([]int64, error) {
	var res []int64
	for id := int64(1); id <= 10; id++ {
		if f.follows[[2]int64{id, userID}] {
			res = append(res, id)
		}
	}
	return res, nil
}

func (f *fakeRepo) GetFollowingIDs(_ context.Context, _ database.Queryable, userID int64) ([]int64, error) {
	var res []int64
	for id := int64(1); id <= 10; id++ {
		if f.follows[[2]int64{userID, id}] {
			res = append(res, id)
		}
	}
	return res, nil
}

func (f *fakeRepo) GetFriendIDs(_ context.Context, _ database.Queryable, userID int64) ([]int64, error) {
	var res []int64
	for id := int64(1); id <= 10; id++ {
		if f.follows[[2]int64{userID, id}] && f.follows[[2]int64{id, userID}] {
			res = append(res, id)
		}
	}
	return res, nil
}

func (f *fakeRepo) Block(_ context.Context, _ database.Queryable, a, b int64) error {
	f.blocks[[2]int64{a, b}] = true
	delete(f.follows, [2]int64{a, b})
	delete(f.follows, [2]int64{b, a})
	return nil
}

func (f *fakeRepo) Unblock(_ context.Context, _ database.Queryable, a, b int64) error {
	delete(f.blocks, [2]int64{a, b})
	return nil
}

func (f *fakeRepo) GetBlockedIDs(_ context.Context, _ database.Queryable, userID int64) ([]int64, error) {
	var res []int64
	for id := int64(1); id <= 10; id++ {
		if f.blocks[[2]int64{userID, id}] {
			res = append(res, id)
		}
	}
	return res, nil
}

func (f *fakeRepo) IsBlockedEitherWay(_ context.Context, _ database.Queryable, a, b int64) (bool, error) {
	return f.blocks[[2]int64{a, b}] || f.blocks[[2]int64{b, a}], nil
}

func (f *fakeRepo) GetNotifications(_ context.Context, _ database.Queryable, userID int64, limit int) ([]*model.Notification, error) {
	var res []*model.Notification
	for _, n := range f.notes {
		if n.UserID == userID && len(res) < limit {
			res = append(res, n)
		}
	}
	return res, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, _ database.Queryable, userID, id int64) error {
	for _, n := range f.notes {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return model.ErrNoRecord
}

func (f *fakeRepo) Notify(_ context.Context, ns ...*model.NotificationCreate) error {
	for _, n := range ns {
		f.notes = append(f.notes, &model.Notification{ID: int64(len(f.notes) + 1), NotificationCreate: *n})
	}
	return nil
}

type tokenStub struct{}

func (tokenStub) CreateToken(id int64) (string, error) {
	if id == 0 {
		return "", errors.New("no id")
	}
	return "token", nil
}

func newTestService(repo *fakeRepo) (*Service, *dbtest.PGX) {
	db := &dbtest.PGX{}
	return NewService(db, zap.NewNop().Sugar(), repo, repo, repo, repo, tokenStub{}), db
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	s, _ := newTestService(repo)

	user, token, err := s.Register(context.Background(), &model.UserCreate{FullName: "Ada", Email: "ada@uni.edu"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.ID != 1 || user.Email != "ada@uni.edu" || token != "token" {
		t.Errorf("Register() = %+v, %q", user, token)
	}

	repo.createErr = model.ErrAlreadyExists
	if _, _, err := s.Register(context.Background(), &model.UserCreate{Email: "ada@uni.edu"}); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("duplicate err = %v, want ErrAlreadyExists", err)
	}
}

func TestProfileHiddenWhenBlocked(t *testing.T) {
	repo := newFakeRepo(1, 2)
	s, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := s.GetProfile(ctx, 1, 2); err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}

	repo.blocks[[2]int64{2, 1}] = true
	if _, err := s.GetProfile(ctx, 1, 2); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
	if _, err := s.GetProfile(ctx, 2, 2); err != nil {
		t.Errorf("own profile err = %v", err)
	}

	users, err := s.SearchUsers(ctx, 1, model.UserSearchFilter{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].ID != 1 {
		t.Errorf("search = %v, want only user 1", users)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo(1)
	s, _ := newTestService(repo)

	bio := "chemistry major"
	notify := false
	user, err := s.UpdateProfile(context.Background(), 1, &model.UserUpdate{Bio: &bio, Notify: &notify})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if user.Bio != bio || user.Notify {
		t.Errorf("user = %+v", user)
	}

	if err := s.UpdatePushToken(context.Background(), 1, "fcm-token"); err != nil {
		t.Fatal(err)
	}
	if repo.users[1].PushToken != "fcm-token" {
		t.Errorf("push token = %q", repo.users[1].PushToken)
	}

	if err := s.DeleteAccount(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.users[1]; ok {
		t.Error("user not deleted")
	}
}

func TestFollowAndFriends(t *testing.T) {
	repo := newFakeRepo(1, 2, 3)
	s, _ := newTestService(repo)
	ctx := context.Background()

	if err := s.Follow(ctx, 1, 1); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("self follow err = %v, want ErrForbidden", err)
	}
	if err := s.Follow(ctx, 1, 42); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("missing user err = %v, want ErrNoRecord", err)
	}

	for _, p := range [][2]int64{{1, 2}, {2, 1}, {1, 3}} {
		if err := s.Follow(ctx, p[0], p[1]); err != nil {
			t.Fatalf("Follow(%d, %d) error: %v", p[0], p[1], err)
		}
	}

	if len(repo.notes) != 3 || repo.notes[0].Kind != model.NotificationFollow || repo.notes[0].UserID != 2 {
		t.Errorf("notifications = %+v", repo.notes)
	}

	friends, err := s.Friends(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Errorf("friends = %v, want [2]", friends)
	}

	following, err := s.Following(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(following) != 2 {
		t.Errorf("following = %d users, want 2", len(following))
	}

	followers, err := s.Followers(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(followers) != 1 || followers[0].ID != 1 {
		t.Errorf("followers = %v, want [1]", followers)
	}

	if err := s.Unfollow(ctx, 1, 3); err != nil {
		t.Fatal(err)
	}
	if followers, _ := s.Followers(ctx, 3); len(followers) != 0 {
		t.Errorf("followers after unfollow = %v", followers)
	}
}

func TestBlock(t *testing.T) {
	repo := newFakeRepo(1, 2)
	s, db := newTestService(repo)
	ctx := context.Background()

	if err := s.Follow(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Block(ctx, 2, 1); err != nil {
		t.Fatalf("Block() error: %v", err)
	}
	if db.Commits != 1 {
		t.Errorf("commits = %d, want 1", db.Commits)
	}

	if repo.follows[[2]int64{1, 2}] {
		t.Error("follow survived the block")
	}
	if err := s.Follow(ctx, 1, 2); !errors.Is(err, model.ErrBlocked) {
		t.Errorf("follow err = %v, want ErrBlocked", err)
	}

	blocks, err := s.Blocks(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].ID != 1 {
		t.Errorf("blocks = %v, want [1]", blocks)
	}

	if err := s.Unblock(ctx, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Follow(ctx, 1, 2); err != nil {
		t.Errorf("follow after unblock err = %v", err)
	}
}

func TestNotifications(t *testing.T) {
	repo := newFakeRepo(1, 2)
	s, _ := newTestService(repo)
	ctx := context.Background()

	if err := s.Follow(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}

	ns, err := s.Notifications(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ns) != 1 || ns[0].Read {
		t.Fatalf("notifications = %+v", ns)
	}

	if err := s.MarkNotificationRead(ctx, 1, ns[0].ID); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("foreign mark err = %v, want ErrNoRecord", err)
	}
	if err := s.MarkNotificationRead(ctx, 2, ns[0].ID); err != nil {
		t.Fatal(err)
	}
	if !repo.notes[0].Read {
		t.Error("notification not marked read")
	}
}
