package service

import (
	"context"
	"fmt"
	"time"

	"sclusiv/internal/model"
	"sclusiv/internal/pkg"
)

// ViewChecker gates access to restricted content; *FollowService
// satisfies it.
type ViewChecker interface {
	CanView(ctx context.Context, viewerID, ownerID uint64) (bool, error)
}

type PostService struct {
	repo    PostRepo
	likes   LikeRepo
	cache   LikeCache
	lock    Locker
	users   UserRepo
	views   ViewChecker
	follows FollowRepo
}

func NewPostService(repo PostRepo, likes LikeRepo, cache LikeCache, lock Locker, users UserRepo, views ViewChecker, follows FollowRepo) *PostService {
	return &PostService{
		repo:    repo,
		likes:   likes,
		cache:   cache,
		lock:    lock,
		users:   users,
		views:   views,
		follows: follows,
	}
}

// Create snapshots the author's byline; later profile edits never
// rewrite published posts.
func (s *PostService) Create(ctx context.Context, authorID uint64, content, imageURL string) (*model.Post, error) {
	if content == "" && imageURL == "" {
		return nil, ErrInvalidInput
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, ErrNotFound
	}
	post := &model.Post{
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		ImageURL:     imageURL,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Edit(ctx context.Context, actorID, postID uint64, content string) error {
	if content == "" {
		return ErrInvalidInput
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return ErrNotFound
	}
	if post.AuthorID != actorID {
		return ErrNoPermission
	}
	return s.repo.Update(ctx, postID, map[string]any{"content": content})
}

func (s *PostService) ToggleHidden(ctx context.Context, actorID, postID uint64) (bool, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return false, ErrNotFound
	}
	if post.AuthorID != actorID {
		return false, ErrNoPermission
	}
	hidden := !post.IsHidden
	if err := s.repo.Update(ctx, postID, map[string]any{"is_hidden": hidden}); err != nil {
		return false, err
	}
	return hidden, nil
}

// Delete is owner-only and idempotent: a post already gone reports
// success.
func (s *PostService) Delete(ctx context.Context, actorID, postID uint64) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil
	}
	if post.AuthorID != actorID {
		return ErrNoPermission
	}
	_, err = s.repo.SoftDelete(ctx, postID)
	return err
}

// ToggleLike flips the viewer's like. The database is authoritative;
// the cache is updated best-effort and dropped when that fails.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint64) (bool, error) {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		return false, ErrNotFound
	}
	liked, err := s.likes.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if liked {
		changed, err := s.likes.Unlike(ctx, userID, postID)
		if err != nil {
			return false, err
		}
		if changed && s.cache != nil {
			if err := s.cache.RemoveLike(ctx, userID, postID); err != nil {
				_ = s.cache.DeleteCount(ctx, postID)
			}
		}
		return false, nil
	}
	changed, err := s.likes.Like(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if changed && s.cache != nil {
		if err := s.cache.AddLike(ctx, userID, postID); err != nil {
			_ = s.cache.DeleteCount(ctx, postID)
		}
	}
	return true, nil
}

func (s *PostService) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if s.cache != nil {
		if b, ok, err := s.cache.IsLiked(ctx, userID, postID); err == nil && ok {
			return b, nil
		}
	}
	b, err := s.likes.IsLiked(ctx, userID, postID)
	if err == nil && s.cache != nil {
		s.cache.WarmIsLiked(ctx, userID, postID, b)
	}
	return b, err
}

// LikeCount reads the cached counter, rebuilding it from the database
// under a short lock on a miss.
func (s *PostService) LikeCount(ctx context.Context, userID, postID uint64) (int64, error) {
	if s.cache == nil {
		return s.likes.LikeCount(ctx, postID)
	}
	if v, ok, err := s.cache.GetCount(ctx, postID); err == nil && ok {
		return v, nil
	}

	token, err := pkg.LockToken()
	if err != nil {
		token = fmt.Sprintf("%d-%d-%d", userID, postID, time.Now().UnixNano())
	}
	got := false
	if s.lock != nil {
		got, _ = s.lock.Acquire(ctx, postID, token)
	}
	if got {
		defer func() { _ = s.lock.Release(ctx, postID, token) }()
		if v, ok, err := s.cache.GetCount(ctx, postID); err == nil && ok {
			return v, nil
		}
		v, err := s.likes.LikeCount(ctx, postID)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetCount(ctx, postID, v)
		return v, nil
	}

	// lost the lock: brief backoff, then reread before going to the DB
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.cache.GetCount(ctx, postID); err == nil && ok {
		return v, nil
	}
	return s.likes.LikeCount(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, userID, postID uint64, text string) (*model.Comment, error) {
	if text == "" {
		return nil, ErrInvalidInput
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, ErrNotFound
	}
	ok, err := s.views.CanView(ctx, userID, post.AuthorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoPermission
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	comment := &model.Comment{
		PostID:     postID,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Text:       text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) Comments(ctx context.Context, postID uint64) ([]model.Comment, error) {
	return s.repo.ListComments(ctx, postID)
}

// Feed pages the posts visible to the viewer: their own, accepted
// followees', and public accounts'. Hidden posts never leave their
// owner's profile.
func (s *PostService) Feed(ctx context.Context, viewerID uint64, cursor uint64, limit int) ([]model.Post, uint64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	followees, err := s.follows.AcceptedFolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	seen := map[uint64]struct{}{viewerID: {}}
	authorIDs := []uint64{viewerID}
	for _, id := range followees {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			authorIDs = append(authorIDs, id)
		}
	}
	for _, u := range all {
		if u.IsPublic && !u.IsBanned {
			if _, ok := seen[u.ID]; !ok {
				seen[u.ID] = struct{}{}
				authorIDs = append(authorIDs, u.ID)
			}
		}
	}
	return s.repo.ListFeedCursor(ctx, authorIDs, cursor, limit)
}

// UserPosts lists a profile's posts. Owners see hidden posts; other
// viewers need visibility, otherwise the caller renders the locked
// placeholder.
func (s *PostService) UserPosts(ctx context.Context, viewerID, ownerID uint64) ([]model.Post, error) {
	if viewerID == ownerID {
		return s.repo.ListByAuthor(ctx, ownerID, true)
	}
	ok, err := s.views.CanView(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoPermission
	}
	return s.repo.ListByAuthor(ctx, ownerID, false)
}
