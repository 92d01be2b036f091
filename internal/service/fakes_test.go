package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"sclusiv/internal/model"
)

var errFakeNotFound = errors.New("record not found")

// FakeUserRepo is an in-memory UserRepo for service tests.
type FakeUserRepo struct {
	users       map[uint64]*model.User
	nameChanges []model.NameChange
	nextID      uint64
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (f *FakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *FakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *FakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == identifier || (u.Phone != "" && u.Phone == identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *FakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *FakeUserRepo) Update(_ context.Context, id uint64, fields map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return errFakeNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "password":
			u.Password = v.(string)
		case "avatar":
			u.Avatar = v.(string)
		case "cover_image":
			u.CoverImage = v.(string)
		case "sex":
			u.Sex = v.(string)
		case "age":
			u.Age = v.(int)
		case "location":
			u.Location = v.(string)
		case "is_public":
			u.IsPublic = v.(bool)
		case "is_banned":
			u.IsBanned = v.(bool)
		case "role":
			u.Role = v.(int)
		}
	}
	return nil
}

func (f *FakeUserRepo) AdjustCredits(_ context.Context, id uint64, delta int64) error {
	u, ok := f.users[id]
	if !ok {
		return errFakeNotFound
	}
	u.Credits += delta
	if u.Credits < 0 {
		u.Credits = 0
	}
	return nil
}

func (f *FakeUserRepo) List(_ context.Context) ([]model.User, error) {
	ids := make([]uint64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.users[id])
	}
	return out, nil
}

func (f *FakeUserRepo) AppendNameChange(_ context.Context, userID uint64, oldName, newName string, at time.Time) error {
	f.nameChanges = append(f.nameChanges, model.NameChange{
		UserID:    userID,
		OldName:   oldName,
		NewName:   newName,
		CreatedAt: at,
	})
	return nil
}

func (f *FakeUserRepo) CountNameChangesSince(_ context.Context, userID uint64, since time.Time) (int64, error) {
	var n int64
	for _, nc := range f.nameChanges {
		if nc.UserID == userID && !nc.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type FakeSessionRepo struct {
	tokens map[uint64]string
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{tokens: make(map[uint64]string)}
}

func (f *FakeSessionRepo) Store(_ context.Context, userID uint64, token string) error {
	f.tokens[userID] = token
	return nil
}

func (f *FakeSessionRepo) Get(_ context.Context, userID uint64) (string, error) {
	t, ok := f.tokens[userID]
	if !ok {
		return "", errFakeNotFound
	}
	return t, nil
}

func (f *FakeSessionRepo) Extend(_ context.Context, userID uint64) error { return nil }

func (f *FakeSessionRepo) Delete(_ context.Context, userID uint64) error {
	delete(f.tokens, userID)
	return nil
}

// FakeFollowRepo mirrors the pending/accepted row semantics of the
// mysql repository, minus the counters and outbox.
type FakeFollowRepo struct {
	rows   []*model.Follow
	nextID uint64
	events []string
}

func NewFakeFollowRepo() *FakeFollowRepo {
	return &FakeFollowRepo{nextID: 1}
}

func (f *FakeFollowRepo) find(followerID, followeeID uint64) *model.Follow {
	for _, rel := range f.rows {
		if rel.FollowerID == followerID && rel.FolloweeID == followeeID {
			return rel
		}
	}
	return nil
}

func (f *FakeFollowRepo) Request(_ context.Context, followerID, followeeID uint64) (bool, error) {
	if f.find(followerID, followeeID) != nil {
		return false, nil
	}
	f.rows = append(f.rows, &model.Follow{
		ID:         f.nextID,
		FollowerID: followerID,
		FolloweeID: followeeID,
		Status:     model.FollowPending,
	})
	f.nextID++
	f.events = append(f.events, "request")
	return true, nil
}

func (f *FakeFollowRepo) Accept(_ context.Context, followeeID, followerID uint64) (bool, error) {
	rel := f.find(followerID, followeeID)
	if rel == nil || rel.Status != model.FollowPending {
		return false, nil
	}
	rel.Status = model.FollowAccepted
	f.events = append(f.events, "accept")
	return true, nil
}

func (f *FakeFollowRepo) Decline(_ context.Context, followeeID, followerID uint64) (bool, error) {
	return f.remove(followerID, followeeID, model.FollowPending, "decline"), nil
}

func (f *FakeFollowRepo) Unfollow(_ context.Context, followerID, followeeID uint64) (bool, error) {
	return f.remove(followerID, followeeID, model.FollowAccepted, "unfollow"), nil
}

func (f *FakeFollowRepo) remove(followerID, followeeID uint64, status int8, event string) bool {
	for i, rel := range f.rows {
		if rel.FollowerID == followerID && rel.FolloweeID == followeeID && rel.Status == status {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			f.events = append(f.events, event)
			return true
		}
	}
	return false
}

func (f *FakeFollowRepo) IsAccepted(_ context.Context, followerID, followeeID uint64) (bool, error) {
	rel := f.find(followerID, followeeID)
	return rel != nil && rel.Status == model.FollowAccepted, nil
}

func (f *FakeFollowRepo) ListRequests(_ context.Context, followeeID uint64) ([]model.Follow, error) {
	var out []model.Follow
	for _, rel := range f.rows {
		if rel.FolloweeID == followeeID && rel.Status == model.FollowPending {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (f *FakeFollowRepo) ListFollowings(_ context.Context, userID uint64, _ uint64, _ int) ([]model.Follow, uint64, error) {
	var out []model.Follow
	for _, rel := range f.rows {
		if rel.FollowerID == userID && rel.Status == model.FollowAccepted {
			out = append(out, *rel)
		}
	}
	return out, 0, nil
}

func (f *FakeFollowRepo) ListFollowers(_ context.Context, userID uint64, _ uint64, _ int) ([]model.Follow, uint64, error) {
	var out []model.Follow
	for _, rel := range f.rows {
		if rel.FolloweeID == userID && rel.Status == model.FollowAccepted {
			out = append(out, *rel)
		}
	}
	return out, 0, nil
}

func (f *FakeFollowRepo) AcceptedFolloweeIDs(_ context.Context, followerID uint64) ([]uint64, error) {
	var out []uint64
	for _, rel := range f.rows {
		if rel.FollowerID == followerID && rel.Status == model.FollowAccepted {
			out = append(out, rel.FolloweeID)
		}
	}
	return out, nil
}

type FakePostRepo struct {
	posts    map[uint64]*model.Post
	comments []model.Comment
	nextID   uint64
}

func NewFakePostRepo() *FakePostRepo {
	return &FakePostRepo{posts: make(map[uint64]*model.Post), nextID: 1}
}

func (f *FakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	f.nextID++
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *FakePostRepo) FindByID(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok || p.Status != 0 {
		return nil, errFakeNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakePostRepo) Update(_ context.Context, id uint64, fields map[string]any) error {
	p, ok := f.posts[id]
	if !ok {
		return errFakeNotFound
	}
	for k, v := range fields {
		switch k {
		case "content":
			p.Content = v.(string)
		case "is_hidden":
			p.IsHidden = v.(bool)
		}
	}
	return nil
}

func (f *FakePostRepo) SoftDelete(_ context.Context, id uint64) (int64, error) {
	p, ok := f.posts[id]
	if !ok || p.Status != 0 {
		return 0, nil
	}
	p.Status = 1
	return 1, nil
}

func (f *FakePostRepo) ListByAuthor(_ context.Context, authorID uint64, includeHidden bool) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.AuthorID != authorID || p.Status != 0 {
			continue
		}
		if p.IsHidden && !includeHidden {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *FakePostRepo) ListFeedCursor(_ context.Context, authorIDs []uint64, cursor uint64, limit int) ([]model.Post, uint64, error) {
	allowed := make(map[uint64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = struct{}{}
	}
	var out []model.Post
	for _, p := range f.posts {
		if p.Status != 0 || p.IsHidden {
			continue
		}
		if cursor > 0 && p.ID >= cursor {
			continue
		}
		if _, ok := allowed[p.AuthorID]; ok {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	var next uint64
	if len(out) > limit {
		next = out[limit-1].ID
		out = out[:limit]
	}
	return out, next, nil
}

func (f *FakePostRepo) AddComment(_ context.Context, comment *model.Comment) error {
	comment.ID = uint64(len(f.comments) + 1)
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *FakePostRepo) ListComments(_ context.Context, postID uint64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type FakeLikeRepo struct {
	likes map[[2]uint64]struct{}
}

func NewFakeLikeRepo() *FakeLikeRepo {
	return &FakeLikeRepo{likes: make(map[[2]uint64]struct{})}
}

func (f *FakeLikeRepo) Like(_ context.Context, userID, postID uint64) (bool, error) {
	k := [2]uint64{userID, postID}
	if _, ok := f.likes[k]; ok {
		return false, nil
	}
	f.likes[k] = struct{}{}
	return true, nil
}

func (f *FakeLikeRepo) Unlike(_ context.Context, userID, postID uint64) (bool, error) {
	k := [2]uint64{userID, postID}
	if _, ok := f.likes[k]; !ok {
		return false, nil
	}
	delete(f.likes, k)
	return true, nil
}

func (f *FakeLikeRepo) IsLiked(_ context.Context, userID, postID uint64) (bool, error) {
	_, ok := f.likes[[2]uint64{userID, postID}]
	return ok, nil
}

func (f *FakeLikeRepo) LikeCount(_ context.Context, postID uint64) (int64, error) {
	var n int64
	for k := range f.likes {
		if k[1] == postID {
			n++
		}
	}
	return n, nil
}

type FakeMessageRepo struct {
	messages  []model.Message
	nextID    uint64
	appendErr error
}

func NewFakeMessageRepo() *FakeMessageRepo {
	return &FakeMessageRepo{nextID: 1}
}

func (f *FakeMessageRepo) Append(_ context.Context, msg *model.Message) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.nextID++
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *FakeMessageRepo) ListConversation(_ context.Context, a, b uint64, _ uint64, limit int) ([]model.Message, uint64, error) {
	var out []model.Message
	for _, m := range f.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, 0, nil
}

func (f *FakeMessageRepo) ListPeers(_ context.Context, userID uint64) ([]uint64, error) {
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, m := range f.messages {
		var peer uint64
		switch userID {
		case m.SenderID:
			peer = m.ReceiverID
		case m.ReceiverID:
			peer = m.SenderID
		default:
			continue
		}
		if _, ok := seen[peer]; !ok {
			seen[peer] = struct{}{}
			out = append(out, peer)
		}
	}
	return out, nil
}

type FakeCreditRepo struct {
	entries []model.CreditEntry
}

func (f *FakeCreditRepo) AppendEntry(_ context.Context, entry *model.CreditEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *FakeCreditRepo) ListByUser(_ context.Context, userID uint64, _ int) ([]model.CreditEntry, error) {
	var out []model.CreditEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type FakeOutboxRepo struct {
	pending []model.FollowOutbox
	sent    []uint64
	retried []uint64
}

func (f *FakeOutboxRepo) List(_ context.Context, batchSize int) ([]model.FollowOutbox, error) {
	if len(f.pending) > batchSize {
		return f.pending[:batchSize], nil
	}
	return f.pending, nil
}

func (f *FakeOutboxRepo) MarkSent(_ context.Context, id uint64) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *FakeOutboxRepo) MarkRetry(_ context.Context, id uint64) error {
	f.retried = append(f.retried, id)
	return nil
}

type FakeNotifier struct {
	welcomes   []string
	banNotices []string
	err        error
}

func (f *FakeNotifier) SendWelcome(email, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *FakeNotifier) SendBanNotice(email, _ string, _ bool) error {
	if f.err != nil {
		return f.err
	}
	f.banNotices = append(f.banNotices, email)
	return nil
}

type fakeGenerator struct {
	out string
	err error
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.out, g.err
}
