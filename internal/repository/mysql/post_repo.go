package mysql

import (
	"context"

	"sclusiv/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository() *PostRepository {
	return &PostRepository{DB: DB}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND status = 0", id).Error
	return &post, err
}

func (r *PostRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = 0", id).
		Updates(fields).Error
}

// SoftDelete flips status; already-deleted posts report zero rows.
func (r *PostRepository) SoftDelete(ctx context.Context, id uint64) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = 0", id).
		Update("status", 1)
	return res.RowsAffected, res.Error
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, includeHidden bool) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Where("author_id = ? AND status = 0", authorID)
	if !includeHidden {
		q = q.Where("is_hidden = false")
	}
	var list []model.Post
	err := q.Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// ListFeedCursor pages posts by the given authors on a descending id
// cursor; ids are insertion-ordered so this matches newest-first. A
// zero cursor means the first page, a zero next cursor the last.
func (r *PostRepository) ListFeedCursor(ctx context.Context, authorIDs []uint64, cursor uint64, limit int) ([]model.Post, uint64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}
	q := r.DB.WithContext(ctx).
		Where("author_id IN ? AND status = 0 AND is_hidden = false", authorIDs)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var list []model.Post
	// limit+1 so the next cursor is known without a second query
	if err := q.Order("id DESC").Limit(limit + 1).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(list) > limit {
		next = list[limit-1].ID
		list = list[:limit]
	}
	return list, next, nil
}

func (r *PostRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *PostRepository) ListComments(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}
